package classpath_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coffee-is-power/jerris/classfile"
	"github.com/coffee-is-power/jerris/classpath"
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

// classBytes renders a minimal class file for the given binary name.
func classBytes(name string) []byte {
	return cat(
		be32(classfile.Magic),
		be16(0), be16(52),
		be16(5),
		[]byte{7}, be16(2),
		utf8Entry(name),
		[]byte{7}, be16(4),
		utf8Entry("java/lang/Object"),
		be16(0x0021),
		be16(1), be16(3),
		be16(0), be16(0), be16(0), be16(0),
	)
}

// writeClass drops a class file for name under root, creating the
// package directories.
func writeClass(t *testing.T, root, name string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPathRead(t *testing.T) {
	root := t.TempDir()
	want := classBytes("com/example/A")
	writeClass(t, root, "com/example/A", want)

	p := classpath.New(root)
	for _, name := range []string{"com/example/A", "com.example.A"} {
		data, err := p.Read(name)
		if err != nil {
			t.Fatalf("Read(%q) error = %v", name, err)
		}
		if len(data) != len(want) {
			t.Errorf("Read(%q) returned %d bytes, want %d", name, len(data), len(want))
		}
	}

	if _, err := p.Read("com/example/Missing"); !errors.Is(err, classpath.ErrClassNotFound) {
		t.Errorf("Read(missing) error = %v, want ErrClassNotFound", err)
	}
}

func TestPathSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeClass(t, first, "A", []byte{1})
	writeClass(t, second, "A", []byte{2, 2})

	data, err := classpath.New(first, second).Read("A")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(data) != 1 {
		t.Errorf("Read() took %d-byte copy, want the first root's", len(data))
	}
}

func TestSplit(t *testing.T) {
	sep := string(os.PathListSeparator)
	p := classpath.Split("a" + sep + sep + "b" + sep)
	roots := p.Roots()
	if len(roots) != 2 || roots[0] != "a" || roots[1] != "b" {
		t.Errorf("Split() roots = %v, want [a b]", roots)
	}
}

func TestLoaderCachesParsedClasses(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, "com/example/A", classBytes("com/example/A"))

	l, err := classpath.NewLoader(classpath.New(root), 8)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	first, err := l.Load("com.example.A")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if name, _ := first.Name(); name != "com/example/A" {
		t.Errorf("Name() = %q, want \"com/example/A\"", name)
	}

	second, err := l.Load("com/example/A")
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if first != second {
		t.Error("second Load() reparsed instead of serving the cache")
	}

	stats := l.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", stats)
	}
}

func TestLoaderReportsParseErrors(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, "Bad", []byte{0xDE, 0xAD, 0xBE, 0xEF})

	l, err := classpath.NewLoader(classpath.New(root), 0)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	if _, err := l.Load("Bad"); !errors.Is(err, classfile.ErrInvalidMagic) {
		t.Errorf("Load() error = %v, want ErrInvalidMagic", err)
	}

	if _, err := l.Load("Gone"); !errors.Is(err, classpath.ErrClassNotFound) {
		t.Errorf("Load() error = %v, want ErrClassNotFound", err)
	}
}
