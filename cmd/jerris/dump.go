package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coffee-is-power/jerris/classfile"
)

var (
	dumpFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <class>",
	Short: "Dump all class file information",
	Long: `Dump all information from a class file in structured format.

Supported formats:
  - text: Human-readable text (default)
  - json: JSON format`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	classPath := args[0]

	switch dumpFormat {
	case "json":
		return dumpJSON(classPath)
	case "text":
		return dumpText(classPath)
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}
}

type ClassDump struct {
	File       string          `json:"file"`
	Version    string          `json:"version"`
	Java       string          `json:"java,omitempty"`
	Flags      string          `json:"flags"`
	Name       string          `json:"name"`
	Super      string          `json:"super,omitempty"`
	Interfaces []string        `json:"interfaces,omitempty"`
	Constants  []ConstantDump  `json:"constants"`
	Fields     []MemberDump    `json:"fields"`
	Methods    []MemberDump    `json:"methods"`
	Attributes []AttributeDump `json:"attributes"`
}

type ConstantDump struct {
	Index uint16 `json:"index"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type MemberDump struct {
	Flags      string          `json:"flags"`
	Name       string          `json:"name"`
	Descriptor string          `json:"descriptor"`
	Attributes []AttributeDump `json:"attributes,omitempty"`
}

type AttributeDump struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

func dumpJSON(classPath string) error {
	c, err := openClass(classPath)
	if err != nil {
		return fmt.Errorf("failed to open class: %w", err)
	}

	dump := &ClassDump{
		File:       classPath,
		Version:    c.Version.String(),
		Java:       c.Version.Java(),
		Flags:      c.AccessFlags.String(),
		Interfaces: c.Interfaces,
	}
	dump.Name, _ = c.Name()
	dump.Super, _ = c.SuperName()

	for i, entry := range c.Pool.All() {
		dump.Constants = append(dump.Constants, ConstantDump{
			Index: uint16(i),
			Kind:  entry.Tag().String(),
			Value: constantValue(c.Pool, entry),
		})
	}

	dump.Fields = make([]MemberDump, len(c.Fields))
	for i, field := range c.Fields {
		name, _ := field.Name(c.Pool)
		desc, _ := field.Descriptor(c.Pool)
		dump.Fields[i] = MemberDump{
			Flags:      field.AccessFlags.String(),
			Name:       name,
			Descriptor: desc,
			Attributes: attributeDumps(c, field.Attributes),
		}
	}

	dump.Methods = make([]MemberDump, len(c.Methods))
	for i, method := range c.Methods {
		name, _ := method.Name(c.Pool)
		desc, _ := method.Descriptor(c.Pool)
		dump.Methods[i] = MemberDump{
			Flags:      method.AccessFlags.String(),
			Name:       name,
			Descriptor: desc,
			Attributes: attributeDumps(c, method.Attributes),
		}
	}

	dump.Attributes = attributeDumps(c, c.Attributes)

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}

func attributeDumps(c *classfile.Class, attrs []classfile.Attribute) []AttributeDump {
	if len(attrs) == 0 {
		return nil
	}
	dumps := make([]AttributeDump, len(attrs))
	for i, attr := range attrs {
		name, err := attr.Name(c.Pool)
		if err != nil {
			name = fmt.Sprintf("#%d", attr.NameIndex)
		}
		dumps[i] = AttributeDump{Name: name, Length: len(attr.Info)}
	}
	return dumps
}

func dumpText(classPath string) error {
	// Reuse the info command
	fmt.Fprintln(output, "=== Class Information ===")
	if err := runInfo(nil, []string{classPath}); err != nil {
		return err
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "=== Constant Pool ===")
	constantsKind = ""
	constantsLimit = 0
	if err := runConstants(nil, []string{classPath}); err != nil {
		return err
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "=== Fields ===")
	fieldsVerbose = true
	if err := runFields(nil, []string{classPath}); err != nil {
		return err
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "=== Methods ===")
	methodsVerbose = true
	if err := runMethods(nil, []string{classPath}); err != nil {
		return err
	}

	return nil
}
