package classfile

import (
	"github.com/coffee-is-power/jerris/constantpool"
	"github.com/coffee-is-power/jerris/internal/stream"
)

// Field is one field record of a class.
type Field struct {
	AccessFlags     FieldFlags
	NameIndex       constantpool.Index
	DescriptorIndex constantpool.Index
	Attributes      []Attribute
}

// Name resolves the field's name through the pool.
func (f *Field) Name(pool *constantpool.Pool) (string, error) {
	return pool.UTF8(f.NameIndex)
}

// Descriptor resolves the field's type descriptor through the pool.
func (f *Field) Descriptor(pool *constantpool.Pool) (string, error) {
	return pool.UTF8(f.DescriptorIndex)
}

func parseField(r *stream.Reader) (Field, error) {
	raw, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	flags, err := parseFieldFlags(raw)
	if err != nil {
		return Field{}, err
	}
	nameIndex, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	descIndex, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	attrs, err := parseAttributes(r)
	if err != nil {
		return Field{}, err
	}
	return Field{
		AccessFlags:     flags,
		NameIndex:       constantpool.Index(nameIndex),
		DescriptorIndex: constantpool.Index(descIndex),
		Attributes:      attrs,
	}, nil
}
