// Package classpath locates compiled classes on a list of directory
// roots and loads them through a parse cache. It maps binary class
// names to files and nothing more; there is no resolution or linking.
package classpath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrClassNotFound is returned when no root holds a file for the
// requested class name.
var ErrClassNotFound = errors.New("classpath: class not found")

// Path is an ordered list of directory roots searched for class files.
type Path struct {
	roots []string
}

// New builds a Path from directory roots, searched in order.
func New(roots ...string) Path {
	return Path{roots: roots}
}

// Split parses a list-separator-joined string of roots, as found in
// environment variables. Empty segments are dropped.
func Split(s string) Path {
	var roots []string
	for _, root := range strings.Split(s, string(os.PathListSeparator)) {
		if root != "" {
			roots = append(roots, root)
		}
	}
	return New(roots...)
}

// Roots returns the directory roots in search order.
func (p Path) Roots() []string {
	return p.roots
}

// Read returns the raw bytes of the named class from the first root
// that holds it. The name may use either dots or slashes as package
// separators; the ".class" suffix is implied.
func (p Path) Read(name string) ([]byte, error) {
	rel := filepath.FromSlash(normalize(name)) + ".class"
	for _, root := range p.roots {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, normalize(name))
}

// normalize converts a dotted binary name to its internal slashed form.
func normalize(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
