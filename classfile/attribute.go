package classfile

import (
	"github.com/coffee-is-power/jerris/constantpool"
	"github.com/coffee-is-power/jerris/internal/stream"
)

// Attribute is a named, opaque payload attached to a class, field or
// method. The payload is carried as raw bytes and never interpreted
// at this level.
type Attribute struct {
	NameIndex constantpool.Index
	Info      []byte
}

// Name resolves the attribute's name through the pool.
func (a *Attribute) Name(pool *constantpool.Pool) (string, error) {
	return pool.UTF8(a.NameIndex)
}

// parseAttributes reads an attribute list starting at its count word.
func parseAttributes(r *stream.Reader) ([]Attribute, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}

	attrs := make([]Attribute, 0, count)
	for i := 0; i < int(count); i++ {
		nameIndex, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		length, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		info, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attribute{
			NameIndex: constantpool.Index(nameIndex),
			Info:      info,
		})
	}
	return attrs, nil
}
