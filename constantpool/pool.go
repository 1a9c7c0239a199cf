package constantpool

import (
	"fmt"
	"iter"

	"github.com/coffee-is-power/jerris/internal/stream"
)

// Pool is a decoded constant pool: a fixed-length, read-only table of
// constants indexed 1..Size(). A Long or Double occupies two
// consecutive slots; the second is a reserved continuation slot that
// no index may legally refer to.
type Pool struct {
	// slots[i] holds entry i+1; nil marks a continuation slot.
	slots []Constant
}

// Decode reads a constant pool starting at its count word. The count
// is interpreted as the number of slots plus one; Long and Double
// entries consume two of those slots.
func Decode(r *stream.Reader) (*Pool, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvalidPoolCount
	}

	slots := make([]Constant, int(count)-1)
	for i := 0; i < len(slots); i++ {
		c, err := decodeConstant(r)
		if err != nil {
			return nil, err
		}
		slots[i] = c
		if wide(c) {
			if i+1 >= len(slots) {
				return nil, ErrTruncatedWideConstant
			}
			i++
		}
	}
	return &Pool{slots: slots}, nil
}

func wide(c Constant) bool {
	t := c.Tag()
	return t == TagLong || t == TagDouble
}

// Size returns the number of slots in the pool, continuation slots
// included.
func (p *Pool) Size() int {
	return len(p.slots)
}

// Entry returns the constant at the given 1-based index. Lookups stay
// checked even on a validated pool: the null index, indices past the
// end, and continuation slots all fail with a typed error instead of
// panicking.
func (p *Pool) Entry(i Index) (Constant, error) {
	if i == 0 {
		return nil, ErrNullIndex
	}
	if int(i) > len(p.slots) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.slots))
	}
	c := p.slots[i-1]
	if c == nil {
		return nil, fmt.Errorf("%w: %d", ErrContinuationSlot, i)
	}
	return c, nil
}

// UTF8 resolves the entry at i as text.
func (p *Pool) UTF8(i Index) (string, error) {
	c, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	u, ok := c.(UTF8)
	if !ok {
		return "", mismatch(i, c, TagUTF8)
	}
	return u.Value, nil
}

// ClassName resolves the entry at i as a Class and returns its name
// text.
func (p *Pool) ClassName(i Index) (string, error) {
	c, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	cl, ok := c.(Class)
	if !ok {
		return "", mismatch(i, c, TagClass)
	}
	return p.UTF8(cl.NameIndex)
}

// NameAndTypeAt resolves the entry at i as a NameAndType.
func (p *Pool) NameAndTypeAt(i Index) (NameAndType, error) {
	c, err := p.Entry(i)
	if err != nil {
		return NameAndType{}, err
	}
	nat, ok := c.(NameAndType)
	if !ok {
		return NameAndType{}, mismatch(i, c, TagNameAndType)
	}
	return nat, nil
}

// All returns an iterator over the pool's entries in index order,
// skipping continuation slots.
func (p *Pool) All() iter.Seq2[Index, Constant] {
	return func(yield func(Index, Constant) bool) {
		for i, c := range p.slots {
			if c == nil {
				continue
			}
			if !yield(Index(i+1), c) {
				return
			}
		}
	}
}

func mismatch(i Index, got Constant, want Tag) error {
	return fmt.Errorf("%w: entry %d holds %s, want %s", ErrUnexpectedConstant, i, got.Tag(), want)
}
