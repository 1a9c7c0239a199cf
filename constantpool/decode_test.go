package constantpool_test

import (
	"errors"
	"testing"

	"github.com/coffee-is-power/jerris/constantpool"
	"github.com/coffee-is-power/jerris/internal/stream"
)

// Helpers shared by the package tests: each entry* function renders
// one constant in its wire form, poolBytes prefixes the count word.

func be16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func entryUTF8(s string) []byte {
	b := []byte{byte(constantpool.TagUTF8)}
	b = append(b, be16(uint16(len(s)))...)
	return append(b, s...)
}

func entryRawUTF8(payload []byte) []byte {
	b := []byte{byte(constantpool.TagUTF8)}
	b = append(b, be16(uint16(len(payload)))...)
	return append(b, payload...)
}

func entryInteger(v int32) []byte {
	return append([]byte{byte(constantpool.TagInteger)}, be32(uint32(v))...)
}

func entryFloat(bits uint32) []byte {
	return append([]byte{byte(constantpool.TagFloat)}, be32(bits)...)
}

func entryLong(bits uint64) []byte {
	b := []byte{byte(constantpool.TagLong)}
	b = append(b, be32(uint32(bits>>32))...)
	return append(b, be32(uint32(bits))...)
}

func entryDouble(bits uint64) []byte {
	b := []byte{byte(constantpool.TagDouble)}
	b = append(b, be32(uint32(bits>>32))...)
	return append(b, be32(uint32(bits))...)
}

func entryClass(name uint16) []byte {
	return append([]byte{byte(constantpool.TagClass)}, be16(name)...)
}

func entryString(idx uint16) []byte {
	return append([]byte{byte(constantpool.TagString)}, be16(idx)...)
}

func entryPair(tag constantpool.Tag, first, second uint16) []byte {
	b := []byte{byte(tag)}
	b = append(b, be16(first)...)
	return append(b, be16(second)...)
}

func entryMethodHandle(kind uint8, ref uint16) []byte {
	b := []byte{byte(constantpool.TagMethodHandle), kind}
	return append(b, be16(ref)...)
}

func entryMethodType(desc uint16) []byte {
	return append([]byte{byte(constantpool.TagMethodType)}, be16(desc)...)
}

func entryInvokeDynamic(bootstrap, nat uint16) []byte {
	b := []byte{byte(constantpool.TagInvokeDynamic)}
	b = append(b, be16(bootstrap)...)
	return append(b, be16(nat)...)
}

func poolBytes(entries ...[]byte) []byte {
	slots := len(entries)
	for _, e := range entries {
		if constantpool.Tag(e[0]) == constantpool.TagLong || constantpool.Tag(e[0]) == constantpool.TagDouble {
			slots++
		}
	}
	b := be16(uint16(slots + 1))
	for _, e := range entries {
		b = append(b, e...)
	}
	return b
}

func mustDecode(t *testing.T, entries ...[]byte) *constantpool.Pool {
	t.Helper()
	p, err := constantpool.Decode(stream.NewReader(poolBytes(entries...)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return p
}

func TestDecodeAllVariants(t *testing.T) {
	p := mustDecode(t,
		entryUTF8("Foo"),                                              // 1
		entryClass(1),                                                 // 2
		entryUTF8("bar"),                                              // 3
		entryUTF8("()V"),                                              // 4
		entryPair(constantpool.TagNameAndType, 3, 4),                  // 5
		entryPair(constantpool.TagMethodRef, 2, 5),                    // 6
		entryPair(constantpool.TagFieldRef, 2, 5),                     // 7
		entryPair(constantpool.TagInterfaceMethodRef, 2, 5),           // 8
		entryString(1),                                                // 9
		entryInteger(-7),                                              // 10
		entryFloat(0x3FC00000),                                        // 11: 1.5
		entryLong(0x1122334455667788),                                 // 12 (+13)
		entryDouble(0x4004000000000000),                               // 14 (+15): 2.5
		entryMethodHandle(uint8(constantpool.RefGetField), 7),         // 16
		entryMethodType(4),                                            // 17
		entryInvokeDynamic(9, 5),                                      // 18
	)

	if p.Size() != 18 {
		t.Fatalf("Size() = %d, want 18", p.Size())
	}

	tests := []struct {
		index constantpool.Index
		want  constantpool.Constant
	}{
		{1, constantpool.UTF8{Value: "Foo"}},
		{2, constantpool.Class{NameIndex: 1}},
		{5, constantpool.NameAndType{NameIndex: 3, DescriptorIndex: 4}},
		{6, constantpool.MethodRef{ClassIndex: 2, NameAndTypeIndex: 5}},
		{7, constantpool.FieldRef{ClassIndex: 2, NameAndTypeIndex: 5}},
		{8, constantpool.InterfaceMethodRef{ClassIndex: 2, NameAndTypeIndex: 5}},
		{9, constantpool.String{StringIndex: 1}},
		{10, constantpool.Integer{Value: -7}},
		{11, constantpool.Float{Value: 1.5}},
		{12, constantpool.Long{Value: 0x1122334455667788}},
		{14, constantpool.Double{Value: 2.5}},
		{16, constantpool.MethodHandle{Kind: constantpool.RefGetField, ReferenceIndex: 7}},
		{17, constantpool.MethodType{DescriptorIndex: 4}},
		{18, constantpool.InvokeDynamic{BootstrapMethodAttrIndex: 9, NameAndTypeIndex: 5}},
	}
	for _, tt := range tests {
		got, err := p.Entry(tt.index)
		if err != nil {
			t.Errorf("Entry(%d) error = %v", tt.index, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Entry(%d) = %#v, want %#v", tt.index, got, tt.want)
		}
	}
}

func TestDecodeUnrecognizedTag(t *testing.T) {
	_, err := constantpool.Decode(stream.NewReader(poolBytes([]byte{2, 0, 0})))

	var tagErr *constantpool.UnrecognizedTagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("Decode() error = %v, want *UnrecognizedTagError", err)
	}
	if tagErr.Tag != 2 {
		t.Errorf("Tag = %d, want 2", tagErr.Tag)
	}
	if tagErr.Offset != 2 {
		t.Errorf("Offset = %d, want 2", tagErr.Offset)
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, err := constantpool.Decode(stream.NewReader(poolBytes(entryRawUTF8([]byte{0xFF, 0xFE, 0xFD}))))

	var utf8Err *constantpool.InvalidUTF8Error
	if !errors.As(err, &utf8Err) {
		t.Fatalf("Decode() error = %v, want *InvalidUTF8Error", err)
	}
}

func TestDecodeInvalidReferenceKind(t *testing.T) {
	for _, kind := range []uint8{0, 10, 255} {
		_, err := constantpool.Decode(stream.NewReader(poolBytes(entryMethodHandle(kind, 1))))

		var kindErr *constantpool.InvalidReferenceKindError
		if !errors.As(err, &kindErr) {
			t.Fatalf("Decode() kind %d error = %v, want *InvalidReferenceKindError", kind, err)
		}
		if kindErr.Kind != kind {
			t.Errorf("Kind = %d, want %d", kindErr.Kind, kind)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"count only half", []byte{0}},
		{"missing entry", be16(2)},
		{"utf8 length overrun", append(be16(2), entryRawUTF8([]byte("abcdefghij"))[:6]...)},
		{"long missing low word", append(be16(3), 5, 0, 0, 0, 1)},
		{"ref missing second index", append(be16(2), 9, 0, 1)},
		{"method handle missing index", append(be16(2), 15, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := constantpool.Decode(stream.NewReader(tt.data))
			if !errors.Is(err, stream.ErrUnexpectedEOF) {
				t.Errorf("Decode() error = %v, want ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestDecodeZeroCount(t *testing.T) {
	_, err := constantpool.Decode(stream.NewReader(be16(0)))
	if !errors.Is(err, constantpool.ErrInvalidPoolCount) {
		t.Errorf("Decode() error = %v, want ErrInvalidPoolCount", err)
	}
}

func TestDecodeWideConstantAtFinalSlot(t *testing.T) {
	// Count word declares a single slot, so the Long's continuation
	// slot does not fit.
	data := append(be16(2), entryLong(1)...)
	_, err := constantpool.Decode(stream.NewReader(data))
	if !errors.Is(err, constantpool.ErrTruncatedWideConstant) {
		t.Errorf("Decode() error = %v, want ErrTruncatedWideConstant", err)
	}
}

func TestDecodeWideConstantSlots(t *testing.T) {
	p := mustDecode(t,
		entryLong(0x00000001_00000002), // 1 (+2)
		entryUTF8("after"),             // 3
	)

	if p.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", p.Size())
	}
	if got, err := p.Entry(1); err != nil || got != (constantpool.Long{Value: 0x0000000100000002}) {
		t.Errorf("Entry(1) = %v, %v", got, err)
	}
	if _, err := p.Entry(2); !errors.Is(err, constantpool.ErrContinuationSlot) {
		t.Errorf("Entry(2) error = %v, want ErrContinuationSlot", err)
	}
	if got, err := p.UTF8(3); err != nil || got != "after" {
		t.Errorf("UTF8(3) = %q, %v; want \"after\"", got, err)
	}
}
