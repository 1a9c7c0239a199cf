package classfile

import "fmt"

// Version is the class file format version pair. The major number
// fixes the platform release; the minor number is 0 for all modern
// compilers unless preview features are enabled.
type Version struct {
	Minor uint16
	Major uint16
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Java returns the Java platform release that produces this major
// version, or the empty string for versions predating Java 1.1.
func (v Version) Java() string {
	switch {
	case v.Major >= 49:
		return fmt.Sprintf("Java %d", v.Major-44)
	case v.Major >= 45:
		return fmt.Sprintf("Java 1.%d", v.Major-44)
	default:
		return ""
	}
}
