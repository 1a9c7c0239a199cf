package classfile

import (
	"github.com/coffee-is-power/jerris/constantpool"
	"github.com/coffee-is-power/jerris/internal/stream"
)

// Method is one method record of a class. It has the same shape as
// Field; only the flag vocabulary differs.
type Method struct {
	AccessFlags     MethodFlags
	NameIndex       constantpool.Index
	DescriptorIndex constantpool.Index
	Attributes      []Attribute
}

// Name resolves the method's name through the pool.
func (m *Method) Name(pool *constantpool.Pool) (string, error) {
	return pool.UTF8(m.NameIndex)
}

// Descriptor resolves the method's signature descriptor through the
// pool.
func (m *Method) Descriptor(pool *constantpool.Pool) (string, error) {
	return pool.UTF8(m.DescriptorIndex)
}

func parseMethod(r *stream.Reader) (Method, error) {
	raw, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	flags, err := parseMethodFlags(raw)
	if err != nil {
		return Method{}, err
	}
	nameIndex, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	descIndex, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	attrs, err := parseAttributes(r)
	if err != nil {
		return Method{}, err
	}
	return Method{
		AccessFlags:     flags,
		NameIndex:       constantpool.Index(nameIndex),
		DescriptorIndex: constantpool.Index(descIndex),
		Attributes:      attrs,
	}, nil
}
