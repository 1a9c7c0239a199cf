package constantpool

import (
	"math"
	"unicode/utf8"

	"github.com/coffee-is-power/jerris/internal/stream"
)

// decodeConstant reads one constant starting at the tag byte.
func decodeConstant(r *stream.Reader) (Constant, error) {
	offset := r.Offset()
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	switch Tag(tag) {
	case TagUTF8:
		return decodeUTF8(r, offset)
	case TagInteger:
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		return Integer{Value: v}, nil
	case TagFloat:
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return Float{Value: v}, nil
	case TagLong:
		bits, err := readWideBits(r)
		if err != nil {
			return nil, err
		}
		return Long{Value: int64(bits)}, nil
	case TagDouble:
		bits, err := readWideBits(r)
		if err != nil {
			return nil, err
		}
		return Double{Value: math.Float64frombits(bits)}, nil
	case TagClass:
		name, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		return Class{NameIndex: name}, nil
	case TagString:
		idx, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		return String{StringIndex: idx}, nil
	case TagFieldRef:
		class, nat, err := readIndexPair(r)
		if err != nil {
			return nil, err
		}
		return FieldRef{ClassIndex: class, NameAndTypeIndex: nat}, nil
	case TagMethodRef:
		class, nat, err := readIndexPair(r)
		if err != nil {
			return nil, err
		}
		return MethodRef{ClassIndex: class, NameAndTypeIndex: nat}, nil
	case TagInterfaceMethodRef:
		class, nat, err := readIndexPair(r)
		if err != nil {
			return nil, err
		}
		return InterfaceMethodRef{ClassIndex: class, NameAndTypeIndex: nat}, nil
	case TagNameAndType:
		name, desc, err := readIndexPair(r)
		if err != nil {
			return nil, err
		}
		return NameAndType{NameIndex: name, DescriptorIndex: desc}, nil
	case TagMethodHandle:
		kind, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if kind < uint8(RefGetField) || kind > uint8(RefInvokeInterface) {
			return nil, &InvalidReferenceKindError{Kind: kind, Offset: offset}
		}
		ref, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		return MethodHandle{Kind: ReferenceKind(kind), ReferenceIndex: ref}, nil
	case TagMethodType:
		desc, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		return MethodType{DescriptorIndex: desc}, nil
	case TagInvokeDynamic:
		bootstrap, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		nat, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		return InvokeDynamic{BootstrapMethodAttrIndex: bootstrap, NameAndTypeIndex: nat}, nil
	default:
		return nil, &UnrecognizedTagError{Tag: tag, Offset: offset}
	}
}

func decodeUTF8(r *stream.Reader, offset int) (Constant, error) {
	length, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, &InvalidUTF8Error{Offset: offset}
	}
	return UTF8{Value: string(raw)}, nil
}

// readWideBits assembles a 64-bit pattern from two consecutive
// big-endian 32-bit words, as Long and Double are stored.
func readWideBits(r *stream.Reader) (uint64, error) {
	hi, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	lo, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func readIndex(r *stream.Reader) (Index, error) {
	v, err := r.ReadU16()
	return Index(v), err
}

func readIndexPair(r *stream.Reader) (Index, Index, error) {
	first, err := readIndex(r)
	if err != nil {
		return 0, 0, err
	}
	second, err := readIndex(r)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
