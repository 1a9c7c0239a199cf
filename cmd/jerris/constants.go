package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coffee-is-power/jerris/constantpool"
)

var (
	constantsKind  string
	constantsLimit int
)

var constantsCmd = &cobra.Command{
	Use:   "constants <class>",
	Short: "List constant pool entries",
	Long: `List the constant pool of a class file.

Use --kind to filter by constant kind (utf8, integer, float, long,
double, class, string, fieldref, methodref, interface_methodref,
name_and_type, method_handle, method_type, invoke_dynamic).`,
	Args: cobra.ExactArgs(1),
	RunE: runConstants,
}

func init() {
	constantsCmd.Flags().StringVarP(&constantsKind, "kind", "k", "", "filter by constant kind")
	constantsCmd.Flags().IntVarP(&constantsLimit, "limit", "n", 0, "limit number of entries shown (0 = unlimited)")
}

func runConstants(cmd *cobra.Command, args []string) error {
	c, err := openClass(args[0])
	if err != nil {
		return fmt.Errorf("failed to open class: %w", err)
	}

	// Determine which kind filter to apply
	var kindFilter constantpool.Tag = 0
	hasKindFilter := false
	if constantsKind != "" {
		hasKindFilter = true
		switch strings.ToLower(constantsKind) {
		case "utf8":
			kindFilter = constantpool.TagUTF8
		case "integer":
			kindFilter = constantpool.TagInteger
		case "float":
			kindFilter = constantpool.TagFloat
		case "long":
			kindFilter = constantpool.TagLong
		case "double":
			kindFilter = constantpool.TagDouble
		case "class":
			kindFilter = constantpool.TagClass
		case "string":
			kindFilter = constantpool.TagString
		case "fieldref":
			kindFilter = constantpool.TagFieldRef
		case "methodref":
			kindFilter = constantpool.TagMethodRef
		case "interface_methodref":
			kindFilter = constantpool.TagInterfaceMethodRef
		case "name_and_type":
			kindFilter = constantpool.TagNameAndType
		case "method_handle":
			kindFilter = constantpool.TagMethodHandle
		case "method_type":
			kindFilter = constantpool.TagMethodType
		case "invoke_dynamic":
			kindFilter = constantpool.TagInvokeDynamic
		default:
			return fmt.Errorf("unknown constant kind: %s", constantsKind)
		}
	}

	// Print header
	fmt.Fprintf(output, "%-8s %-20s %s\n", "INDEX", "KIND", "VALUE")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))

	count := 0

	for i, entry := range c.Pool.All() {
		if hasKindFilter && entry.Tag() != kindFilter {
			continue
		}

		printConstant(c.Pool, i, entry)
		count++
		if constantsLimit > 0 && count >= constantsLimit {
			break
		}
	}

	fmt.Fprintf(output, "\nTotal: %d constants\n", count)
	return nil
}

func printConstant(pool *constantpool.Pool, i constantpool.Index, entry constantpool.Constant) {
	fmt.Fprintf(output, "#%-7d %-20s %s\n", i, entry.Tag(), constantValue(pool, entry))
}

// constantValue renders an entry with its referenced entries resolved.
// Unresolvable references fall back to their raw indices.
func constantValue(pool *constantpool.Pool, entry constantpool.Constant) string {
	switch v := entry.(type) {
	case constantpool.UTF8:
		return fmt.Sprintf("%q", v.Value)
	case constantpool.Integer:
		return fmt.Sprintf("%d", v.Value)
	case constantpool.Float:
		return fmt.Sprintf("%g", v.Value)
	case constantpool.Long:
		return fmt.Sprintf("%d", v.Value)
	case constantpool.Double:
		return fmt.Sprintf("%g", v.Value)
	case constantpool.Class:
		if name, err := pool.UTF8(v.NameIndex); err == nil {
			return name
		}
		return fmt.Sprintf("#%d", v.NameIndex)
	case constantpool.String:
		if s, err := pool.UTF8(v.StringIndex); err == nil {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("#%d", v.StringIndex)
	case constantpool.FieldRef:
		return refValue(pool, v.ClassIndex, v.NameAndTypeIndex)
	case constantpool.MethodRef:
		return refValue(pool, v.ClassIndex, v.NameAndTypeIndex)
	case constantpool.InterfaceMethodRef:
		return refValue(pool, v.ClassIndex, v.NameAndTypeIndex)
	case constantpool.NameAndType:
		return natValue(pool, v)
	case constantpool.MethodHandle:
		return fmt.Sprintf("%s #%d", v.Kind, v.ReferenceIndex)
	case constantpool.MethodType:
		if desc, err := pool.UTF8(v.DescriptorIndex); err == nil {
			return desc
		}
		return fmt.Sprintf("#%d", v.DescriptorIndex)
	case constantpool.InvokeDynamic:
		return fmt.Sprintf("bootstrap[%d] %s", v.BootstrapMethodAttrIndex, natRef(pool, v.NameAndTypeIndex))
	default:
		return ""
	}
}

func refValue(pool *constantpool.Pool, class, nat constantpool.Index) string {
	name, err := pool.ClassName(class)
	if err != nil {
		name = fmt.Sprintf("#%d", class)
	}
	return name + "." + natRef(pool, nat)
}

func natRef(pool *constantpool.Pool, i constantpool.Index) string {
	nat, err := pool.NameAndTypeAt(i)
	if err != nil {
		return fmt.Sprintf("#%d", i)
	}
	return natValue(pool, nat)
}

func natValue(pool *constantpool.Pool, nat constantpool.NameAndType) string {
	name, err := pool.UTF8(nat.NameIndex)
	if err != nil {
		name = fmt.Sprintf("#%d", nat.NameIndex)
	}
	desc, err := pool.UTF8(nat.DescriptorIndex)
	if err != nil {
		desc = fmt.Sprintf("#%d", nat.DescriptorIndex)
	}
	return name + ":" + desc
}
