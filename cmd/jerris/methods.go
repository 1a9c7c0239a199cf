package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coffee-is-power/jerris/internal/descriptor"
)

var (
	methodsVerbose bool
)

var methodsCmd = &cobra.Command{
	Use:   "methods <class>",
	Short: "List methods in the class file",
	Long:  `List all methods declared by a class file with their access flags and descriptors.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMethods,
}

func init() {
	methodsCmd.Flags().BoolVar(&methodsVerbose, "attributes", false, "show method attributes")
}

func runMethods(cmd *cobra.Command, args []string) error {
	c, err := openClass(args[0])
	if err != nil {
		return fmt.Errorf("failed to open class: %w", err)
	}

	fmt.Fprintf(output, "%-5s %-24s %-44s %s\n", "INDEX", "FLAGS", "SIGNATURE", "DESCRIPTOR")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 100))

	for i, method := range c.Methods {
		name, err := method.Name(c.Pool)
		if err != nil {
			name = fmt.Sprintf("#%d", method.NameIndex)
		}
		desc, err := method.Descriptor(c.Pool)
		if err != nil {
			desc = fmt.Sprintf("#%d", method.DescriptorIndex)
		}
		fmt.Fprintf(output, "%-5d %-24s %-44s %s\n",
			i, method.AccessFlags, descriptor.MethodSimple(name, desc), desc)

		if methodsVerbose {
			for _, attr := range method.Attributes {
				attrName, err := attr.Name(c.Pool)
				if err != nil {
					attrName = fmt.Sprintf("#%d", attr.NameIndex)
				}
				fmt.Fprintf(output, "      %s (%d bytes)\n", attrName, len(attr.Info))
			}
		}
	}

	fmt.Fprintf(output, "\nTotal: %d methods\n", len(c.Methods))
	return nil
}
