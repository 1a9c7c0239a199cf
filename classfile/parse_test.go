package classfile_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/coffee-is-power/jerris/classfile"
	"github.com/coffee-is-power/jerris/constantpool"
)

func be16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func utf8Entry(s string) []byte {
	return cat([]byte{1}, be16(uint16(len(s))), []byte(s))
}

// minimalHeader renders magic, version 52.0 and a four-entry pool:
// class A extending java/lang/Object.
func minimalHeader() []byte {
	return cat(
		be32(classfile.Magic),
		be16(0), be16(52),
		be16(5),                        // constant_pool_count
		[]byte{7}, be16(2),             // 1: Class A
		utf8Entry("A"),                 // 2
		[]byte{7}, be16(4),             // 3: Class java/lang/Object
		utf8Entry("java/lang/Object"),  // 4
	)
}

// minimalClass is the smallest well-formed class file the tests use:
// no interfaces, fields, methods or attributes.
func minimalClass(classFlags uint16) []byte {
	return cat(
		minimalHeader(),
		be16(classFlags),
		be16(1), // this_class
		be16(3), // super_class
		be16(0), // interfaces
		be16(0), // fields
		be16(0), // methods
		be16(0), // attributes
	)
}

func TestParseGoldenFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/Main.class")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	c, err := classfile.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if c.Version.Major != 63 || c.Version.Minor != 0 {
		t.Errorf("Version = %s, want 63.0", c.Version)
	}
	if got := c.Version.Java(); got != "Java 19" {
		t.Errorf("Version.Java() = %q, want \"Java 19\"", got)
	}

	if c.Pool.Size() != 32 {
		t.Errorf("Pool.Size() = %d, want 32", c.Pool.Size())
	}
	if got, err := c.Pool.Entry(1); err != nil || got != (constantpool.MethodRef{ClassIndex: 2, NameAndTypeIndex: 3}) {
		t.Errorf("Pool.Entry(1) = %v, %v", got, err)
	}
	if got, err := c.Pool.Entry(19); err != nil || got != (constantpool.String{StringIndex: 20}) {
		t.Errorf("Pool.Entry(19) = %v, %v", got, err)
	}
	if got, err := c.Pool.UTF8(20); err != nil || got != "Hello World!" {
		t.Errorf("Pool.UTF8(20) = %q, %v", got, err)
	}

	if c.AccessFlags != classfile.ClassPublic|classfile.ClassSuper {
		t.Errorf("AccessFlags = %#06x, want public super", uint16(c.AccessFlags))
	}
	if !c.AccessFlags.IsPublic() || !c.AccessFlags.IsSuper() || c.AccessFlags.IsInterface() {
		t.Errorf("AccessFlags accessors wrong for %s", c.AccessFlags)
	}

	if name, err := c.Name(); err != nil || name != "Main" {
		t.Errorf("Name() = %q, %v; want \"Main\"", name, err)
	}
	if super, err := c.SuperName(); err != nil || super != "java/lang/Object" {
		t.Errorf("SuperName() = %q, %v; want \"java/lang/Object\"", super, err)
	}
	if len(c.Interfaces) != 0 {
		t.Errorf("Interfaces = %v, want none", c.Interfaces)
	}

	if len(c.Fields) != 1 {
		t.Fatalf("len(Fields) = %d, want 1", len(c.Fields))
	}
	f := c.Fields[0]
	if f.AccessFlags != classfile.FieldPublic {
		t.Errorf("field flags = %#06x, want public", uint16(f.AccessFlags))
	}
	if name, _ := f.Name(c.Pool); name != "a" {
		t.Errorf("field name = %q, want \"a\"", name)
	}
	if desc, _ := f.Descriptor(c.Pool); desc != "I" {
		t.Errorf("field descriptor = %q, want \"I\"", desc)
	}
	if len(f.Attributes) != 0 {
		t.Errorf("field attributes = %d, want 0", len(f.Attributes))
	}

	if len(c.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(c.Methods))
	}

	init := c.Methods[0]
	if name, _ := init.Name(c.Pool); name != "<init>" {
		t.Errorf("method 0 name = %q, want \"<init>\"", name)
	}
	if desc, _ := init.Descriptor(c.Pool); desc != "()V" {
		t.Errorf("method 0 descriptor = %q, want \"()V\"", desc)
	}
	if init.AccessFlags != classfile.MethodPublic {
		t.Errorf("method 0 flags = %#06x, want public", uint16(init.AccessFlags))
	}
	if len(init.Attributes) != 1 {
		t.Fatalf("method 0 attributes = %d, want 1", len(init.Attributes))
	}
	if name, _ := init.Attributes[0].Name(c.Pool); name != "Code" {
		t.Errorf("method 0 attribute name = %q, want \"Code\"", name)
	}
	wantInitCode := []byte{
		0, 2, 0, 1, 0, 0, 0, 10,
		42, 183, 0, 1, 42, 4, 181, 0, 7, 177,
		0, 0, 0, 1, 0, 28, 0, 0, 0, 10,
		0, 2, 0, 0, 0, 1, 0, 4, 0, 2,
	}
	if !bytes.Equal(init.Attributes[0].Info, wantInitCode) {
		t.Errorf("method 0 code payload = %v, want %v", init.Attributes[0].Info, wantInitCode)
	}

	main := c.Methods[1]
	if name, _ := main.Name(c.Pool); name != "main" {
		t.Errorf("method 1 name = %q, want \"main\"", name)
	}
	if desc, _ := main.Descriptor(c.Pool); desc != "([Ljava/lang/String;)V" {
		t.Errorf("method 1 descriptor = %q", desc)
	}
	if main.AccessFlags != classfile.MethodPublic|classfile.MethodStatic {
		t.Errorf("method 1 flags = %#06x, want public static", uint16(main.AccessFlags))
	}
	wantMainCode := []byte{
		0, 2, 0, 1, 0, 0, 0, 9,
		178, 0, 13, 18, 19, 182, 0, 21, 177,
		0, 0, 0, 1, 0, 28, 0, 0, 0, 10,
		0, 2, 0, 0, 0, 4, 0, 8, 0, 5,
	}
	if len(main.Attributes) != 1 || !bytes.Equal(main.Attributes[0].Info, wantMainCode) {
		t.Errorf("method 1 code payload = %v, want %v", main.Attributes, wantMainCode)
	}

	if len(c.Attributes) != 1 {
		t.Fatalf("class attributes = %d, want 1", len(c.Attributes))
	}
	if name, _ := c.Attributes[0].Name(c.Pool); name != "SourceFile" {
		t.Errorf("class attribute name = %q, want \"SourceFile\"", name)
	}
	if !bytes.Equal(c.Attributes[0].Info, []byte{0, 32}) {
		t.Errorf("class attribute payload = %v, want [0 32]", c.Attributes[0].Info)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	for _, magic := range []uint32{0x00000000, 0xCAFEBABF, 0xBEBAFECA, 0xFEEDFACE} {
		// Only the magic word is present; nothing past it may be read.
		_, err := classfile.Parse(be32(magic))
		if !errors.Is(err, classfile.ErrInvalidMagic) {
			t.Errorf("Parse(%#08x) error = %v, want ErrInvalidMagic", magic, err)
		}

		var perr *classfile.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%#08x) error = %v, want *ParseError", magic, err)
		}
		if perr.Offset != 4 {
			t.Errorf("ParseError.Offset = %d, want 4", perr.Offset)
		}
	}
}

func TestParseTruncated(t *testing.T) {
	data, err := os.ReadFile("testdata/Main.class")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	cuts := []int{0, 3, 7, 9, 15, 40, 120, len(data) - 40, len(data) - 1}
	for _, cut := range cuts {
		if _, err := classfile.Parse(data[:cut]); !errors.Is(err, classfile.ErrUnexpectedEOF) {
			t.Errorf("Parse(data[:%d]) error = %v, want ErrUnexpectedEOF", cut, err)
		}
	}
}

func TestParseRejectsInvalidPool(t *testing.T) {
	// Class entry whose name index holds an integer.
	data := cat(
		be32(classfile.Magic),
		be16(0), be16(52),
		be16(3),
		[]byte{7}, be16(2),          // 1: Class -> 2
		[]byte{3}, be32(1),          // 2: Integer
	)

	_, err := classfile.Parse(data)
	var verr *constantpool.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse() error = %v, want *ValidationError", err)
	}
	if verr.Violation != constantpool.ViolationClassNameIndex || verr.Index != 1 {
		t.Errorf("ValidationError = %v, want class name violation at entry 1", verr)
	}
}

func TestParseRejectsUnknownClassFlags(t *testing.T) {
	_, err := classfile.Parse(minimalClass(0x0021 | 0x0002))

	var ferr *classfile.AccessFlagsError
	if !errors.As(err, &ferr) {
		t.Fatalf("Parse() error = %v, want *AccessFlagsError", err)
	}
	if ferr.Kind != "class" {
		t.Errorf("Kind = %q, want \"class\"", ferr.Kind)
	}
	if ferr.Flags != 0x0023 {
		t.Errorf("Flags = %#06x, want 0x0023", ferr.Flags)
	}
}

func TestParseRejectsUnknownFieldFlags(t *testing.T) {
	data := cat(
		minimalHeader(),
		be16(0x0021),
		be16(1), be16(3), be16(0),
		be16(1),                            // one field
		be16(0x0020), be16(2), be16(2), be16(0), // 0x0020 is not a field flag
		be16(0), be16(0),
	)

	_, err := classfile.Parse(data)
	var ferr *classfile.AccessFlagsError
	if !errors.As(err, &ferr) {
		t.Fatalf("Parse() error = %v, want *AccessFlagsError", err)
	}
	if ferr.Kind != "field" {
		t.Errorf("Kind = %q, want \"field\"", ferr.Kind)
	}
}

func TestParseRejectsUnknownMethodFlags(t *testing.T) {
	data := cat(
		minimalHeader(),
		be16(0x0021),
		be16(1), be16(3), be16(0),
		be16(0),                            // no fields
		be16(1),                            // one method
		be16(0x0200), be16(2), be16(2), be16(0), // 0x0200 is not a method flag
		be16(0),
	)

	_, err := classfile.Parse(data)
	var ferr *classfile.AccessFlagsError
	if !errors.As(err, &ferr) {
		t.Fatalf("Parse() error = %v, want *AccessFlagsError", err)
	}
	if ferr.Kind != "method" {
		t.Errorf("Kind = %q, want \"method\"", ferr.Kind)
	}
}

func TestParseResolvesInterfaces(t *testing.T) {
	data := cat(
		minimalHeader(),
		be16(0x0021),
		be16(1), be16(3),
		be16(1), be16(3), // one interface: java/lang/Object
		be16(0), be16(0), be16(0),
	)

	c, err := classfile.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(c.Interfaces) != 1 || c.Interfaces[0] != "java/lang/Object" {
		t.Errorf("Interfaces = %v, want [java/lang/Object]", c.Interfaces)
	}
}

func TestParseRejectsNonClassInterfaceIndex(t *testing.T) {
	tests := []struct {
		name string
		idx  uint16
		want error
	}{
		{"utf8 entry", 2, constantpool.ErrUnexpectedConstant},
		{"out of range", 9, constantpool.ErrIndexOutOfRange},
		{"null index", 0, constantpool.ErrNullIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := cat(
				minimalHeader(),
				be16(0x0021),
				be16(1), be16(3),
				be16(1), be16(tt.idx),
				be16(0), be16(0), be16(0),
			)
			if _, err := classfile.Parse(data); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	c, err := classfile.Open("testdata/Main.class")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if name, _ := c.Name(); name != "Main" {
		t.Errorf("Name() = %q, want \"Main\"", name)
	}

	if _, err := classfile.Open("testdata/NoSuch.class"); err == nil {
		t.Error("Open() on missing file succeeded, want error")
	}
}
