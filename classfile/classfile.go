// Package classfile parses Java class files into an in-memory
// structure whose constant pool cross-references have been validated.
// Attribute payloads stay opaque: the package never interprets
// bytecode or any other attribute content.
package classfile

import (
	"fmt"
	"os"

	"github.com/coffee-is-power/jerris/constantpool"
	"github.com/coffee-is-power/jerris/internal/stream"
)

// Magic is the 4-byte signature opening every class file.
const Magic uint32 = 0xCAFEBABE

// Class is a fully parsed class file. A Class value exists only if
// every assembly stage succeeded; a failed parse never yields a
// partial Class.
type Class struct {
	Version     Version
	Pool        *constantpool.Pool
	AccessFlags ClassFlags
	ThisClass   constantpool.Index
	SuperClass  constantpool.Index
	Interfaces  []string
	Fields      []Field
	Methods     []Method
	Attributes  []Attribute
}

// Open reads and parses the class file at path.
func Open(path string) (*Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classfile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a class file. Stages run strictly in wire order:
// magic, version, constant pool decode, pool validation, access
// flags, this/super class, interfaces, fields, methods, class
// attributes. The first failing stage aborts the parse.
func Parse(data []byte) (*Class, error) {
	r := stream.NewReader(data)

	magic, err := r.ReadU32()
	if err != nil {
		return nil, parseError(r, "reading magic number", err)
	}
	if magic != Magic {
		return nil, parseError(r, fmt.Sprintf("magic number %#08x", magic), ErrInvalidMagic)
	}

	minor, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading minor version", err)
	}
	major, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading major version", err)
	}

	pool, err := constantpool.Decode(r)
	if err != nil {
		return nil, parseError(r, "decoding constant pool", err)
	}
	if err := pool.Validate(); err != nil {
		return nil, parseError(r, "validating constant pool", err)
	}

	rawFlags, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading access flags", err)
	}
	flags, err := parseClassFlags(rawFlags)
	if err != nil {
		return nil, parseError(r, "decoding access flags", err)
	}

	thisClass, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading this class index", err)
	}
	superClass, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading super class index", err)
	}

	ifaceCount, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading interface count", err)
	}
	interfaces := make([]string, 0, ifaceCount)
	for i := 0; i < int(ifaceCount); i++ {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, parseError(r, fmt.Sprintf("reading interface %d", i), err)
		}
		// The pool is validated by now, but the interface indices live
		// outside the pool, so the lookup stays checked.
		name, err := pool.ClassName(constantpool.Index(idx))
		if err != nil {
			return nil, parseError(r, fmt.Sprintf("resolving interface %d", i), err)
		}
		interfaces = append(interfaces, name)
	}

	fieldCount, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading field count", err)
	}
	fields := make([]Field, 0, fieldCount)
	for i := 0; i < int(fieldCount); i++ {
		f, err := parseField(r)
		if err != nil {
			return nil, parseError(r, fmt.Sprintf("parsing field %d", i), err)
		}
		fields = append(fields, f)
	}

	methodCount, err := r.ReadU16()
	if err != nil {
		return nil, parseError(r, "reading method count", err)
	}
	methods := make([]Method, 0, methodCount)
	for i := 0; i < int(methodCount); i++ {
		m, err := parseMethod(r)
		if err != nil {
			return nil, parseError(r, fmt.Sprintf("parsing method %d", i), err)
		}
		methods = append(methods, m)
	}

	attrs, err := parseAttributes(r)
	if err != nil {
		return nil, parseError(r, "parsing class attributes", err)
	}

	return &Class{
		Version:     Version{Minor: minor, Major: major},
		Pool:        pool,
		AccessFlags: flags,
		ThisClass:   constantpool.Index(thisClass),
		SuperClass:  constantpool.Index(superClass),
		Interfaces:  interfaces,
		Fields:      fields,
		Methods:     methods,
		Attributes:  attrs,
	}, nil
}

// Name resolves this class's binary name through the pool.
func (c *Class) Name() (string, error) {
	return c.Pool.ClassName(c.ThisClass)
}

// SuperName resolves the superclass's binary name. It returns the
// empty string when there is none, as for java/lang/Object.
func (c *Class) SuperName() (string, error) {
	if c.SuperClass == 0 {
		return "", nil
	}
	return c.Pool.ClassName(c.SuperClass)
}

func parseError(r *stream.Reader, message string, err error) error {
	return &ParseError{Offset: r.Offset(), Message: message, Err: err}
}
