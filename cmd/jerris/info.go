package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <class>",
	Short: "Display class file information",
	Long:  `Display general information about a class file including version, access flags, and member counts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	classPath := args[0]

	c, err := openClass(classPath)
	if err != nil {
		return fmt.Errorf("failed to open class: %w", err)
	}

	fmt.Fprintf(output, "Class File: %s\n", classPath)
	fmt.Fprintf(output, "Version: %s", c.Version)
	if java := c.Version.Java(); java != "" {
		fmt.Fprintf(output, " (%s)", java)
	}
	fmt.Fprintln(output)
	fmt.Fprintf(output, "Access Flags: %s\n", c.AccessFlags)

	if name, err := c.Name(); err == nil {
		fmt.Fprintf(output, "This Class: %s\n", name)
	}
	if super, err := c.SuperName(); err == nil && super != "" {
		fmt.Fprintf(output, "Super Class: %s\n", super)
	}
	for _, iface := range c.Interfaces {
		fmt.Fprintf(output, "Implements: %s\n", iface)
	}

	fmt.Fprintf(output, "Constant Pool Entries: %d\n", c.Pool.Size())
	fmt.Fprintf(output, "Fields: %d\n", len(c.Fields))
	fmt.Fprintf(output, "Methods: %d\n", len(c.Methods))
	fmt.Fprintf(output, "Attributes: %d\n", len(c.Attributes))

	return nil
}
