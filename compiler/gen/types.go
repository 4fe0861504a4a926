package gen

import (
	"fmt"
	"go/token"
	"strings"
)

// Well-known external types the generator resolves through a TypeResolver.
const (
	// PlatformContext is the platform execution-context type a component
	// is constructed from.
	PlatformContext = "android.content.Context"
	// InjectorType holds the static inject(target) operation called by
	// rewritten component methods.
	InjectorType = "com.skydoves.preferenceroom.PreferenceRoom"
)

// TypeName is a reference to a type. A TypeName with Elem set is a list of
// Elem. A TypeName with a package but no name denotes the package itself.
type TypeName struct {
	PkgPath string
	Name    string
	Pointer bool
	Elem    *TypeName
}

// ClassType returns a reference to a class; classes are reference types.
func ClassType(pkg, name string) *TypeName {
	return &TypeName{PkgPath: pkg, Name: name, Pointer: true}
}

// ListOf returns a list type of elem.
func ListOf(elem *TypeName) *TypeName {
	return &TypeName{Elem: elem}
}

// Builtin returns a reference to a predeclared type, e.g. "string".
func Builtin(name string) *TypeName {
	return &TypeName{Name: name}
}

// PackageOf returns a reference to the package itself.
func PackageOf(pkg string) *TypeName {
	return &TypeName{PkgPath: pkg}
}

// IsList reports whether t is a list type.
func (t *TypeName) IsList() bool { return t.Elem != nil }

// IsPackage reports whether t denotes a package rather than a type.
func (t *TypeName) IsPackage() bool { return t.Name == "" && t.Elem == nil }

// Qualified returns the package-qualified name without pointer or list
// markers, e.g. "com.x.Preference_User".
func (t *TypeName) Qualified() string {
	switch {
	case t.IsList():
		return t.Elem.Qualified()
	case t.PkgPath == "":
		return t.Name
	case t.Name == "":
		return t.PkgPath
	default:
		return t.PkgPath + "." + t.Name
	}
}

// String returns the type in the form accepted by ParseType.
func (t *TypeName) String() string {
	if t == nil {
		return "void"
	}
	var b strings.Builder
	if t.Pointer {
		b.WriteByte('*')
	}
	if t.IsList() {
		b.WriteString("[]")
		b.WriteString(t.Elem.String())
		return b.String()
	}
	b.WriteString(t.Qualified())
	return b.String()
}

// Equal reports whether t and o refer to the same type.
func (t *TypeName) Equal(o *TypeName) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.PkgPath != o.PkgPath || t.Name != o.Name || t.Pointer != o.Pointer {
		return false
	}
	if t.IsList() != o.IsList() {
		return false
	}
	return !t.IsList() || t.Elem.Equal(o.Elem)
}

// ParseType parses a type reference. The empty string and "void" yield a
// nil TypeName. Accepted forms:
//
//	int                                 predeclared or local type
//	Request                             local type
//	com.x.Request                       package-qualified (Java)
//	example.com/app/model.Request       package-qualified (Go import path)
//	*example.com/app/model.Request      pointer
//	[]string                            list
//
// The package is everything up to the last '.' after the last '/'.
func ParseType(s string) (*TypeName, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil, nil
	}
	switch {
	case strings.HasPrefix(s, "[]"):
		elem, err := ParseType(s[2:])
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return nil, fmt.Errorf("invalid type %q: list of void", s)
		}
		return ListOf(elem), nil
	case strings.HasPrefix(s, "*"):
		t, err := ParseType(s[1:])
		if err != nil {
			return nil, err
		}
		if t == nil || t.IsList() || t.Pointer {
			return nil, fmt.Errorf("invalid type %q: pointer to %s", s, t)
		}
		t.Pointer = true
		return t, nil
	}
	pkg, name := "", s
	slash := strings.LastIndexByte(s, '/')
	if dot := strings.LastIndexByte(s[slash+1:], '.'); dot >= 0 {
		pkg, name = s[:slash+1+dot], s[slash+1+dot+1:]
		if pkg == "" {
			return nil, fmt.Errorf("invalid type %q: empty package", s)
		}
	}
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("invalid type %q: %q is not an identifier", s, name)
	}
	return &TypeName{PkgPath: pkg, Name: name}, nil
}

// TypeResolver resolves well-known external types by fully-qualified name.
type TypeResolver interface {
	ResolveType(name string) (*TypeName, bool)
}

// TypeMap is a TypeResolver backed by a map.
type TypeMap map[string]*TypeName

// ResolveType implements TypeResolver.
func (m TypeMap) ResolveType(name string) (*TypeName, bool) {
	t, ok := m[name]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}
