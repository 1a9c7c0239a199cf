// Package constantpool models the constant pool of a Java class file:
// the ordered table of symbolic constants that the rest of the file
// refers to by index. It decodes the pool from its binary form and
// validates that every cross-reference between entries resolves to an
// entry of the required variant.
package constantpool

// Tag is the 1-byte discriminator identifying a constant pool entry's
// variant.
type Tag uint8

// Constant pool tag values.
const (
	TagUTF8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldRef           Tag = 9
	TagMethodRef          Tag = 10
	TagInterfaceMethodRef Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagInvokeDynamic      Tag = 18
)

func (t Tag) String() string {
	switch t {
	case TagUTF8:
		return "utf8"
	case TagInteger:
		return "integer"
	case TagFloat:
		return "float"
	case TagLong:
		return "long"
	case TagDouble:
		return "double"
	case TagClass:
		return "class"
	case TagString:
		return "string"
	case TagFieldRef:
		return "fieldref"
	case TagMethodRef:
		return "methodref"
	case TagInterfaceMethodRef:
		return "interface_methodref"
	case TagNameAndType:
		return "name_and_type"
	case TagMethodHandle:
		return "method_handle"
	case TagMethodType:
		return "method_type"
	case TagInvokeDynamic:
		return "invoke_dynamic"
	default:
		return "unknown"
	}
}

// Index is a 1-based reference into the constant pool, kept exactly as
// encoded in the class file. Index 0 is the null index and never
// resolves to an entry.
type Index uint16

// ReferenceKind is the 1-byte sub-tag of a MethodHandle entry selecting
// how the referenced field or method is accessed.
type ReferenceKind uint8

// Method handle reference kinds.
const (
	RefGetField ReferenceKind = iota + 1
	RefGetStatic
	RefPutField
	RefPutStatic
	RefInvokeVirtual
	RefInvokeStatic
	RefInvokeSpecial
	RefNewInvokeSpecial
	RefInvokeInterface
)

func (k ReferenceKind) String() string {
	switch k {
	case RefGetField:
		return "get_field"
	case RefGetStatic:
		return "get_static"
	case RefPutField:
		return "put_field"
	case RefPutStatic:
		return "put_static"
	case RefInvokeVirtual:
		return "invoke_virtual"
	case RefInvokeStatic:
		return "invoke_static"
	case RefInvokeSpecial:
		return "invoke_special"
	case RefNewInvokeSpecial:
		return "new_invoke_special"
	case RefInvokeInterface:
		return "invoke_interface"
	default:
		return "unknown"
	}
}

// Constant is a decoded constant pool entry.
type Constant interface {
	// Tag returns the entry's tag byte.
	Tag() Tag
}

// Class is a symbolic reference to a class or interface by name.
type Class struct {
	NameIndex Index // UTF8 entry holding the binary class name
}

func (Class) Tag() Tag { return TagClass }

// FieldRef is a symbolic reference to a field of a class.
type FieldRef struct {
	ClassIndex       Index
	NameAndTypeIndex Index
}

func (FieldRef) Tag() Tag { return TagFieldRef }

// MethodRef is a symbolic reference to a method of a class.
type MethodRef struct {
	ClassIndex       Index
	NameAndTypeIndex Index
}

func (MethodRef) Tag() Tag { return TagMethodRef }

// InterfaceMethodRef is a symbolic reference to an interface method.
type InterfaceMethodRef struct {
	ClassIndex       Index
	NameAndTypeIndex Index
}

func (InterfaceMethodRef) Tag() Tag { return TagInterfaceMethodRef }

// String is a reference to a constant string object.
type String struct {
	StringIndex Index // UTF8 entry holding the string text
}

func (String) Tag() Tag { return TagString }

// Integer is a 32-bit integer constant.
type Integer struct {
	Value int32
}

func (Integer) Tag() Tag { return TagInteger }

// Float is a 32-bit IEEE-754 float constant.
type Float struct {
	Value float32
}

func (Float) Tag() Tag { return TagFloat }

// Long is a 64-bit integer constant. It occupies two pool slots.
type Long struct {
	Value int64
}

func (Long) Tag() Tag { return TagLong }

// Double is a 64-bit IEEE-754 float constant. It occupies two pool
// slots.
type Double struct {
	Value float64
}

func (Double) Tag() Tag { return TagDouble }

// NameAndType pairs a name with a field or method descriptor.
type NameAndType struct {
	NameIndex       Index
	DescriptorIndex Index
}

func (NameAndType) Tag() Tag { return TagNameAndType }

// UTF8 is a text constant.
type UTF8 struct {
	Value string
}

func (UTF8) Tag() Tag { return TagUTF8 }

// MethodHandle denotes a field or method together with an access mode.
type MethodHandle struct {
	Kind           ReferenceKind
	ReferenceIndex Index
}

func (MethodHandle) Tag() Tag { return TagMethodHandle }

// MethodType is a method descriptor constant.
type MethodType struct {
	DescriptorIndex Index
}

func (MethodType) Tag() Tag { return TagMethodType }

// InvokeDynamic binds a call site to a bootstrap method and a name and
// type. BootstrapMethodAttrIndex refers into the class's
// BootstrapMethods attribute, not into the pool.
type InvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         Index
}

func (InvokeDynamic) Tag() Tag { return TagInvokeDynamic }
