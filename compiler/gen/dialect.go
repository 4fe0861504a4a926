package gen

import (
	"fmt"
	"sort"
	"sync"
)

// Dialect renders class definitions in a target language. Implementations
// must be safe for concurrent use.
type Dialect interface {
	// Name returns the dialect name used by WithDialect.
	Name() string
	// Resolver resolves the well-known platform types for the target.
	Resolver() TypeResolver
	// FileName returns the output path of the class, relative to the target.
	FileName(c *Class) string
	// Render returns the source of the class, starting with header.
	Render(c *Class, header string) ([]byte, error)
}

var dialects = struct {
	sync.RWMutex
	m map[string]Dialect
}{m: make(map[string]Dialect)}

// RegisterDialect makes a dialect available by name. It panics if the
// dialect is nil or a dialect with the same name is already registered.
func RegisterDialect(d Dialect) {
	if d == nil {
		panic("preferenceroom: RegisterDialect dialect is nil")
	}
	dialects.Lock()
	defer dialects.Unlock()
	if _, dup := dialects.m[d.Name()]; dup {
		panic("preferenceroom: RegisterDialect called twice for dialect " + d.Name())
	}
	dialects.m[d.Name()] = d
}

// DialectByName returns the registered dialect with the given name.
func DialectByName(name string) (Dialect, error) {
	dialects.RLock()
	defer dialects.RUnlock()
	d, ok := dialects.m[name]
	if !ok {
		return nil, NewConfigError("Dialect", name, fmt.Sprintf("unknown dialect; registered: %v", dialectNames()))
	}
	return d, nil
}

// Dialects returns the names of the registered dialects, sorted.
func Dialects() []string {
	dialects.RLock()
	defer dialects.RUnlock()
	return dialectNames()
}

func dialectNames() []string {
	names := make([]string, 0, len(dialects.m))
	for name := range dialects.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
