// Package golang renders generated components as Go source with jennifer.
//
// Go has no static members, so the class tree is mapped as follows:
//
//	static instance field   -> package var instance<Class> of type preferenceroom.Singleton[*Class]
//	other static fields     -> fields of the <Class> struct
//	static method m of T    -> package func Pascal(m)+T, e.g. InitPreferenceComponent_Manager
//	static call on package  -> package func, e.g. preferenceroom.Inject(r)
//	public method m         -> exported method Pascal(m)
//	constructor             -> unexported func new<Class>
//
// Importing the package registers the dialect under the name "go":
//
//	import _ "github.com/syssam/preferenceroom/compiler/gen/golang"
//
// The generated file for a component Manager in package example.com/app/prefs:
//
//	prefs/
//	└── preferencecomponent_manager.go
package golang

import (
	"bytes"
	"path"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/preferenceroom/compiler/gen"
)

const (
	// Name is the dialect name.
	Name = "go"
	// RuntimePkg is the import path of the runtime support package.
	RuntimePkg = "github.com/syssam/preferenceroom"
)

// resolver maps the well-known platform types to the runtime package.
var resolver = gen.TypeMap{
	gen.PlatformContext: {PkgPath: RuntimePkg, Name: "Context"},
	gen.InjectorType:    gen.PackageOf(RuntimePkg),
}

// methodNames maps platform methods that do not follow Pascal casing.
var methodNames = map[string]string{
	gen.ApplicationContextMethod: "ApplicationContext",
}

// Dialect is the Go dialect.
type Dialect struct{}

func init() {
	gen.RegisterDialect(Dialect{})
}

// Name implements gen.Dialect.
func (Dialect) Name() string { return Name }

// Resolver implements gen.Dialect.
func (Dialect) Resolver() gen.TypeResolver { return resolver }

// FileName implements gen.Dialect.
func (Dialect) FileName(c *gen.Class) string {
	return path.Join(PackageName(c.Package), "preferencecomponent_"+inflect.Underscore(c.Component)+".go")
}

// Render implements gen.Dialect.
func (Dialect) Render(c *gen.Class, header string) ([]byte, error) {
	name := PackageName(c.Package)
	if !gen.IsIdentifier(name) {
		return nil, gen.NewGenerationError("render", c.Name, "invalid package name "+name, nil)
	}
	f, err := genClass(c, name)
	if err != nil {
		return nil, gen.NewGenerationError("render", c.Name, "", err)
	}
	f.HeaderComment(header)
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, gen.NewGenerationError("render", c.Name, "", err)
	}
	return buf.Bytes(), nil
}

// PackageName returns the Go package name of a package path: its last
// element, lower-cased. A major version suffix such as /v2 is skipped and
// Java-style dotted paths use the last dotted element.
func PackageName(pkg string) string {
	if dir, base := path.Split(pkg); dir != "" && isMajorVersion(base) {
		pkg = path.Clean(dir)
	}
	name := path.Base(pkg)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// isMajorVersion reports whether elem is a major version path element.
func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' || elem[1] == '0' {
		return false
	}
	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// singletonVar returns the package var holding the singleton of class.
func singletonVar(c *gen.Class) string {
	return gen.InstanceField + c.Name
}

// constructorName returns the unexported constructor of class.
func constructorName(name string) string {
	return "new" + name
}

// funcName returns the package func implementing a static method of t.
func funcName(method string, t *gen.TypeName) string {
	if t.IsPackage() {
		return gen.Exported(method)
	}
	return gen.Exported(method) + t.Name
}

// methodName returns the Go name of a method.
func methodName(name string) string {
	if n, ok := methodNames[name]; ok {
		return n
	}
	return gen.Exported(name)
}
