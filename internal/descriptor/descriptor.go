// Package descriptor renders field and method descriptors in Java
// source form.
package descriptor

import (
	"errors"
	"strings"
)

// Errors
var (
	ErrEmptyInput    = errors.New("descriptor: empty input")
	ErrUnexpectedEnd = errors.New("descriptor: unexpected end of input")
	ErrUnknownType   = errors.New("descriptor: unknown type code")
	ErrTrailingData  = errors.New("descriptor: trailing data")
	ErrNotAMethod    = errors.New("descriptor: not a method descriptor")
)

// Field converts a field descriptor to Java source form, for example
// "[Ljava/lang/String;" to "java.lang.String[]".
func Field(desc string) (string, error) {
	if len(desc) == 0 {
		return "", ErrEmptyInput
	}

	p := &parser{input: desc}
	typ, err := p.parseType(false)
	if err != nil {
		return "", err
	}
	if p.pos != len(p.input) {
		return "", ErrTrailingData
	}
	return typ, nil
}

// Method converts a method descriptor to a Java source signature,
// for example "main" with "([Ljava/lang/String;)V" to
// "void main(java.lang.String[])".
func Method(name, desc string) (string, error) {
	if len(desc) == 0 {
		return "", ErrEmptyInput
	}

	p := &parser{input: desc}
	if p.consume() != '(' {
		return "", ErrNotAMethod
	}

	var params []string
	for p.peek() != ')' {
		if p.pos >= len(p.input) {
			return "", ErrUnexpectedEnd
		}
		typ, err := p.parseType(false)
		if err != nil {
			return "", err
		}
		params = append(params, typ)
	}
	p.pos++ // skip ')'

	ret, err := p.parseType(true)
	if err != nil {
		return "", err
	}
	if p.pos != len(p.input) {
		return "", ErrTrailingData
	}

	return ret + " " + name + "(" + strings.Join(params, ", ") + ")", nil
}

// FieldSimple converts a field descriptor, returning the input
// unchanged when it does not parse.
func FieldSimple(desc string) string {
	result, err := Field(desc)
	if err != nil {
		return desc
	}
	return result
}

// MethodSimple converts a method descriptor, falling back to the raw
// name and descriptor when it does not parse.
func MethodSimple(name, desc string) string {
	result, err := Method(name, desc)
	if err != nil {
		return name + " " + desc
	}
	return result
}

// parser holds scanner state.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseType(allowVoid bool) (string, error) {
	dims := 0
	for p.peek() == '[' {
		p.pos++
		dims++
	}

	if p.pos >= len(p.input) {
		return "", ErrUnexpectedEnd
	}

	var base string
	switch c := p.consume(); c {
	case 'B':
		base = "byte"
	case 'C':
		base = "char"
	case 'D':
		base = "double"
	case 'F':
		base = "float"
	case 'I':
		base = "int"
	case 'J':
		base = "long"
	case 'S':
		base = "short"
	case 'Z':
		base = "boolean"
	case 'V':
		if !allowVoid || dims > 0 {
			return "", ErrUnknownType
		}
		base = "void"
	case 'L':
		name, err := p.parseClassName()
		if err != nil {
			return "", err
		}
		base = name
	default:
		p.pos--
		return "", ErrUnknownType
	}

	return base + strings.Repeat("[]", dims), nil
}

func (p *parser) parseClassName() (string, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ';' {
		p.pos++
	}
	if p.pos >= len(p.input) {
		return "", ErrUnexpectedEnd
	}

	name := p.input[start:p.pos]
	p.pos++ // skip ';'

	return strings.ReplaceAll(name, "/", "."), nil
}

// Helper methods

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) consume() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	c := p.input[p.pos]
	p.pos++
	return c
}
