package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coffee-is-power/jerris/internal/descriptor"
)

var (
	fieldsVerbose bool
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <class>",
	Short: "List fields in the class file",
	Long:  `List all fields declared by a class file with their access flags and descriptors.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsVerbose, "attributes", false, "show field attributes")
}

func runFields(cmd *cobra.Command, args []string) error {
	c, err := openClass(args[0])
	if err != nil {
		return fmt.Errorf("failed to open class: %w", err)
	}

	fmt.Fprintf(output, "%-5s %-24s %-20s %-12s %s\n", "INDEX", "FLAGS", "TYPE", "NAME", "DESCRIPTOR")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))

	for i, field := range c.Fields {
		name, err := field.Name(c.Pool)
		if err != nil {
			name = fmt.Sprintf("#%d", field.NameIndex)
		}
		desc, err := field.Descriptor(c.Pool)
		if err != nil {
			desc = fmt.Sprintf("#%d", field.DescriptorIndex)
		}
		fmt.Fprintf(output, "%-5d %-24s %-20s %-12s %s\n",
			i, field.AccessFlags, descriptor.FieldSimple(desc), name, desc)

		if fieldsVerbose {
			for _, attr := range field.Attributes {
				attrName, err := attr.Name(c.Pool)
				if err != nil {
					attrName = fmt.Sprintf("#%d", attr.NameIndex)
				}
				fmt.Fprintf(output, "      %s (%d bytes)\n", attrName, len(attr.Info))
			}
		}
	}

	fmt.Fprintf(output, "\nTotal: %d fields\n", len(c.Fields))
	return nil
}
