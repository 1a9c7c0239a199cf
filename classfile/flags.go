package classfile

import "strings"

// ClassFlags is the access flag word of a class.
type ClassFlags uint16

// Class access flags.
const (
	ClassPublic     ClassFlags = 0x0001
	ClassFinal      ClassFlags = 0x0010
	ClassSuper      ClassFlags = 0x0020
	ClassInterface  ClassFlags = 0x0200
	ClassAbstract   ClassFlags = 0x0400
	ClassSynthetic  ClassFlags = 0x1000
	ClassAnnotation ClassFlags = 0x2000
	ClassEnum       ClassFlags = 0x4000
	ClassModule     ClassFlags = 0x8000
)

const classMask = ClassPublic | ClassFinal | ClassSuper | ClassInterface |
	ClassAbstract | ClassSynthetic | ClassAnnotation | ClassEnum | ClassModule

func parseClassFlags(v uint16) (ClassFlags, error) {
	if ClassFlags(v)&^classMask != 0 {
		return 0, &AccessFlagsError{Kind: "class", Flags: v}
	}
	return ClassFlags(v), nil
}

func (f ClassFlags) IsPublic() bool     { return f&ClassPublic != 0 }
func (f ClassFlags) IsFinal() bool      { return f&ClassFinal != 0 }
func (f ClassFlags) IsSuper() bool      { return f&ClassSuper != 0 }
func (f ClassFlags) IsInterface() bool  { return f&ClassInterface != 0 }
func (f ClassFlags) IsAbstract() bool   { return f&ClassAbstract != 0 }
func (f ClassFlags) IsSynthetic() bool  { return f&ClassSynthetic != 0 }
func (f ClassFlags) IsAnnotation() bool { return f&ClassAnnotation != 0 }
func (f ClassFlags) IsEnum() bool       { return f&ClassEnum != 0 }
func (f ClassFlags) IsModule() bool     { return f&ClassModule != 0 }

func (f ClassFlags) String() string {
	return flagString(uint16(f), classFlagNames)
}

// FieldFlags is the access flag word of a field.
type FieldFlags uint16

// Field access flags.
const (
	FieldPublic    FieldFlags = 0x0001
	FieldPrivate   FieldFlags = 0x0002
	FieldProtected FieldFlags = 0x0004
	FieldStatic    FieldFlags = 0x0008
	FieldFinal     FieldFlags = 0x0010
	FieldVolatile  FieldFlags = 0x0040
	FieldTransient FieldFlags = 0x0080
	FieldSynthetic FieldFlags = 0x1000
	FieldEnum      FieldFlags = 0x4000
)

const fieldMask = FieldPublic | FieldPrivate | FieldProtected | FieldStatic |
	FieldFinal | FieldVolatile | FieldTransient | FieldSynthetic | FieldEnum

func parseFieldFlags(v uint16) (FieldFlags, error) {
	if FieldFlags(v)&^fieldMask != 0 {
		return 0, &AccessFlagsError{Kind: "field", Flags: v}
	}
	return FieldFlags(v), nil
}

func (f FieldFlags) IsPublic() bool    { return f&FieldPublic != 0 }
func (f FieldFlags) IsPrivate() bool   { return f&FieldPrivate != 0 }
func (f FieldFlags) IsProtected() bool { return f&FieldProtected != 0 }
func (f FieldFlags) IsStatic() bool    { return f&FieldStatic != 0 }
func (f FieldFlags) IsFinal() bool     { return f&FieldFinal != 0 }
func (f FieldFlags) IsVolatile() bool  { return f&FieldVolatile != 0 }
func (f FieldFlags) IsTransient() bool { return f&FieldTransient != 0 }
func (f FieldFlags) IsSynthetic() bool { return f&FieldSynthetic != 0 }
func (f FieldFlags) IsEnum() bool      { return f&FieldEnum != 0 }

func (f FieldFlags) String() string {
	return flagString(uint16(f), fieldFlagNames)
}

// MethodFlags is the access flag word of a method.
type MethodFlags uint16

// Method access flags.
const (
	MethodPublic       MethodFlags = 0x0001
	MethodPrivate      MethodFlags = 0x0002
	MethodProtected    MethodFlags = 0x0004
	MethodStatic       MethodFlags = 0x0008
	MethodFinal        MethodFlags = 0x0010
	MethodSynchronized MethodFlags = 0x0020
	MethodBridge       MethodFlags = 0x0040
	MethodVarargs      MethodFlags = 0x0080
	MethodNative       MethodFlags = 0x0100
	MethodAbstract     MethodFlags = 0x0400
	MethodStrict       MethodFlags = 0x0800
	MethodSynthetic    MethodFlags = 0x1000
)

const methodMask = MethodPublic | MethodPrivate | MethodProtected |
	MethodStatic | MethodFinal | MethodSynchronized | MethodBridge |
	MethodVarargs | MethodNative | MethodAbstract | MethodStrict |
	MethodSynthetic

func parseMethodFlags(v uint16) (MethodFlags, error) {
	if MethodFlags(v)&^methodMask != 0 {
		return 0, &AccessFlagsError{Kind: "method", Flags: v}
	}
	return MethodFlags(v), nil
}

func (f MethodFlags) IsPublic() bool       { return f&MethodPublic != 0 }
func (f MethodFlags) IsPrivate() bool      { return f&MethodPrivate != 0 }
func (f MethodFlags) IsProtected() bool    { return f&MethodProtected != 0 }
func (f MethodFlags) IsStatic() bool       { return f&MethodStatic != 0 }
func (f MethodFlags) IsFinal() bool        { return f&MethodFinal != 0 }
func (f MethodFlags) IsSynchronized() bool { return f&MethodSynchronized != 0 }
func (f MethodFlags) IsBridge() bool       { return f&MethodBridge != 0 }
func (f MethodFlags) IsVarargs() bool      { return f&MethodVarargs != 0 }
func (f MethodFlags) IsNative() bool       { return f&MethodNative != 0 }
func (f MethodFlags) IsAbstract() bool     { return f&MethodAbstract != 0 }
func (f MethodFlags) IsStrict() bool       { return f&MethodStrict != 0 }
func (f MethodFlags) IsSynthetic() bool    { return f&MethodSynthetic != 0 }

func (f MethodFlags) String() string {
	return flagString(uint16(f), methodFlagNames)
}

type flagName struct {
	bit  uint16
	name string
}

var classFlagNames = []flagName{
	{uint16(ClassPublic), "public"},
	{uint16(ClassFinal), "final"},
	{uint16(ClassSuper), "super"},
	{uint16(ClassInterface), "interface"},
	{uint16(ClassAbstract), "abstract"},
	{uint16(ClassSynthetic), "synthetic"},
	{uint16(ClassAnnotation), "annotation"},
	{uint16(ClassEnum), "enum"},
	{uint16(ClassModule), "module"},
}

var fieldFlagNames = []flagName{
	{uint16(FieldPublic), "public"},
	{uint16(FieldPrivate), "private"},
	{uint16(FieldProtected), "protected"},
	{uint16(FieldStatic), "static"},
	{uint16(FieldFinal), "final"},
	{uint16(FieldVolatile), "volatile"},
	{uint16(FieldTransient), "transient"},
	{uint16(FieldSynthetic), "synthetic"},
	{uint16(FieldEnum), "enum"},
}

var methodFlagNames = []flagName{
	{uint16(MethodPublic), "public"},
	{uint16(MethodPrivate), "private"},
	{uint16(MethodProtected), "protected"},
	{uint16(MethodStatic), "static"},
	{uint16(MethodFinal), "final"},
	{uint16(MethodSynchronized), "synchronized"},
	{uint16(MethodBridge), "bridge"},
	{uint16(MethodVarargs), "varargs"},
	{uint16(MethodNative), "native"},
	{uint16(MethodAbstract), "abstract"},
	{uint16(MethodStrict), "strict"},
	{uint16(MethodSynthetic), "synthetic"},
}

func flagString(v uint16, names []flagName) string {
	var parts []string
	for _, fn := range names {
		if v&fn.bit != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, " ")
}
