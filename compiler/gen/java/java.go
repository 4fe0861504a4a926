// Package java renders generated components as Java source, the output of
// the annotation processor the generator is modeled on.
//
// Importing the package registers the dialect under the name "java". A
// component Manager in package com.x is written to
// com/x/PreferenceComponent_Manager.java.
package java

import (
	"path"
	"strings"

	"github.com/syssam/preferenceroom/compiler/gen"
)

// Name is the dialect name.
const Name = "java"

const (
	nonNull   = "androidx.annotation.NonNull"
	listType  = "java.util.List"
	arrayList = "java.util.ArrayList"
	indent    = "  "
)

var resolver = gen.TypeMap{
	gen.PlatformContext: {PkgPath: "android.content", Name: "Context"},
	gen.InjectorType:    {PkgPath: "com.skydoves.preferenceroom", Name: "PreferenceRoom"},
}

// builtins maps Go predeclared names to Java types.
var builtins = map[string]string{
	"string":  "String",
	"bool":    "boolean",
	"int64":   "long",
	"int32":   "int",
	"float64": "double",
	"float32": "float",
}

// boxed maps Java primitives to their boxed types for use as type arguments.
var boxed = map[string]string{
	"boolean": "Boolean",
	"byte":    "Byte",
	"char":    "Character",
	"short":   "Short",
	"int":     "Integer",
	"long":    "Long",
	"float":   "Float",
	"double":  "Double",
}

// Dialect is the Java dialect.
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
	return path.Join(strings.ReplaceAll(c.Package, ".", "/"), c.Name+".java")
}

// Render implements gen.Dialect.
func (Dialect) Render(c *gen.Class, header string) ([]byte, error) {
	if strings.ContainsAny(c.Package, "/ ") {
		return nil, gen.NewGenerationError("render", c.Name, "invalid java package "+c.Package, nil)
	}
	e := newEmitter(c)
	body, err := e.class()
	if err != nil {
		return nil, gen.NewGenerationError("render", c.Name, "", err)
	}
	var b strings.Builder
	for _, line := range strings.Split(header, "\n") {
		b.WriteString("// " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString("package " + c.Package + ";\n\n")
	if imports := e.imports.sorted(); len(imports) > 0 {
		for _, imp := range imports {
			b.WriteString("import " + imp + ";\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(body)
	return []byte(b.String()), nil
}
