package constantpool

import (
	"errors"
	"fmt"
)

// Sentinel errors for pool decode and lookup failures.
var (
	// ErrInvalidPoolCount indicates a constant_pool_count below 1.
	ErrInvalidPoolCount = errors.New("constantpool: constant pool count must be at least 1")

	// ErrTruncatedWideConstant indicates a Long or Double in the final
	// slot, leaving no room for its continuation slot.
	ErrTruncatedWideConstant = errors.New("constantpool: wide constant missing its continuation slot")

	// ErrNullIndex indicates a lookup through index 0.
	ErrNullIndex = errors.New("constantpool: null constant index")

	// ErrIndexOutOfRange indicates a lookup past the end of the pool.
	ErrIndexOutOfRange = errors.New("constantpool: constant index out of range")

	// ErrContinuationSlot indicates a lookup into the reserved slot
	// following a Long or Double constant.
	ErrContinuationSlot = errors.New("constantpool: index refers to the continuation slot of a wide constant")

	// ErrUnexpectedConstant indicates a resolved entry of the wrong
	// variant during a checked lookup.
	ErrUnexpectedConstant = errors.New("constantpool: constant is not of the expected variant")
)

// UnrecognizedTagError reports a tag byte outside the known set.
type UnrecognizedTagError struct {
	Tag    uint8 // raw tag byte
	Offset int   // byte offset of the tag within the stream
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("constantpool: unrecognized constant tag %d at offset 0x%x", e.Tag, e.Offset)
}

// InvalidUTF8Error reports a UTF8 constant whose payload is not valid
// UTF-8 text.
type InvalidUTF8Error struct {
	Offset int // byte offset of the entry's tag within the stream
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("constantpool: invalid utf-8 in constant at offset 0x%x", e.Offset)
}

// InvalidReferenceKindError reports a MethodHandle sub-tag outside the
// range 1..9.
type InvalidReferenceKindError struct {
	Kind   uint8 // raw sub-tag byte
	Offset int   // byte offset of the entry's tag within the stream
}

func (e *InvalidReferenceKindError) Error() string {
	return fmt.Sprintf("constantpool: invalid method handle reference kind %d at offset 0x%x", e.Kind, e.Offset)
}

// Violation identifies which cross-reference rule a pool entry broke.
type Violation uint8

// Cross-reference rule violations.
const (
	ViolationClassNameIndex Violation = iota + 1
	ViolationFieldClassIndex
	ViolationFieldNameAndTypeIndex
	ViolationMethodClassIndex
	ViolationMethodNameAndTypeIndex
	ViolationInterfaceMethodClassIndex
	ViolationInterfaceMethodNameAndTypeIndex
	ViolationStringUTF8Index
	ViolationNameAndTypeNameIndex
	ViolationNameAndTypeDescriptorIndex
	ViolationMethodTypeDescriptorIndex
	ViolationInvokeDynamicNameAndTypeIndex
	// ViolationInvokeDynamicBootstrapMethodIndex is declared for
	// completeness but never produced: the bootstrap method attribute
	// is not yet validated.
	ViolationInvokeDynamicBootstrapMethodIndex
	ViolationMethodHandleReference
)

func (v Violation) String() string {
	switch v {
	case ViolationClassNameIndex:
		return "class name index does not refer to a utf8 entry"
	case ViolationFieldClassIndex:
		return "fieldref class index does not refer to a class entry"
	case ViolationFieldNameAndTypeIndex:
		return "fieldref name and type index does not refer to a name_and_type entry"
	case ViolationMethodClassIndex:
		return "methodref class index does not refer to a class entry"
	case ViolationMethodNameAndTypeIndex:
		return "methodref name and type index does not refer to a name_and_type entry"
	case ViolationInterfaceMethodClassIndex:
		return "interface_methodref class index does not refer to a class entry"
	case ViolationInterfaceMethodNameAndTypeIndex:
		return "interface_methodref name and type index does not refer to a name_and_type entry"
	case ViolationStringUTF8Index:
		return "string index does not refer to a utf8 entry"
	case ViolationNameAndTypeNameIndex:
		return "name_and_type name index does not refer to a utf8 entry"
	case ViolationNameAndTypeDescriptorIndex:
		return "name_and_type descriptor index does not refer to a utf8 entry"
	case ViolationMethodTypeDescriptorIndex:
		return "method_type descriptor index does not refer to a utf8 entry"
	case ViolationInvokeDynamicNameAndTypeIndex:
		return "invoke_dynamic name and type index does not refer to a name_and_type entry"
	case ViolationInvokeDynamicBootstrapMethodIndex:
		return "invoke_dynamic bootstrap method index is not validated"
	case ViolationMethodHandleReference:
		return "method handle reference index does not refer to the entry required by its kind"
	default:
		return "unknown violation"
	}
}

// ValidationError reports the first cross-reference rule violated
// while validating a pool. Index names the offending entry. A failed
// validation rejects the whole pool.
type ValidationError struct {
	Violation Violation
	Index     Index
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("constantpool: entry %d: %s", e.Index, e.Violation)
}
