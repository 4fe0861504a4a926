package java

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/preferenceroom/compiler/gen"
)

// importSet tracks imported types. A simple name is bound to the first
// qualified name using it; later types with the same simple name are
// written fully qualified.
type importSet struct {
	pkg   string
	names map[string]string
}

func (s *importSet) ref(pkg, name string) string {
	if pkg == "" || pkg == "java.lang" {
		return name
	}
	qualified := pkg + "." + name
	if prev, ok := s.names[name]; ok && prev != qualified {
		return qualified
	}
	s.names[name] = qualified
	return name
}

func (s *importSet) sorted() []string {
	imports := make([]string, 0, len(s.names))
	for _, q := range s.names {
		if q[:strings.LastIndexByte(q, '.')] == s.pkg {
			continue
		}
		imports = append(imports, q)
	}
	slices.Sort(imports)
	return imports
}

// emitter writes the class body and collects its imports.
type emitter struct {
	c       *gen.Class
	b       strings.Builder
	imports *importSet
}

func newEmitter(c *gen.Class) *emitter {
	e := &emitter{c: c, imports: &importSet{pkg: c.Package, names: make(map[string]string)}}
	// The class and the entities in its package shadow imports of the same name.
	e.imports.names[c.Name] = c.Package + "." + c.Name
	return e
}

func (e *emitter) line(depth int, format string, args ...any) {
	e.b.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(&e.b, format, args...)
	e.b.WriteByte('\n')
}

func (e *emitter) class() (string, error) {
	c := e.c
	e.line(0, "/**")
	e.line(0, " * %s", c.Doc)
	e.line(0, " */")
	decl := "public class " + c.Name
	if c.Implements != nil {
		decl += " implements " + e.typ(c.Implements)
	}
	e.line(0, "%s {", decl)
	for i, f := range c.Fields {
		if i > 0 {
			e.line(0, "")
		}
		e.line(1, "%s %s %s;", modifiers(f.Modifiers), e.typ(f.Type), f.Name)
	}
	for _, m := range c.Methods {
		e.line(0, "")
		if err := e.method(m); err != nil {
			return "", err
		}
	}
	e.line(0, "}")
	return e.b.String(), nil
}

func (e *emitter) method(m *gen.Method) error {
	if m.Override {
		e.line(1, "@Override")
	}
	mods := modifiers(m.Modifiers)
	if m.Kind == gen.KindInit {
		mods += " synchronized"
	}
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		param := e.typ(p.Type) + " " + p.Name
		if p.NonNull {
			param = "@" + e.imports.ref(splitQualified(nonNull)) + " " + param
		}
		params = append(params, param)
	}
	sig := mods + " "
	if m.Kind != gen.KindConstructor {
		sig += e.typ(m.Returns) + " "
	}
	sig += m.Name + "(" + strings.Join(params, ", ") + ")"
	e.line(1, "%s {", sig)
	for _, s := range m.Body {
		st, err := e.stmt(s)
		if err != nil {
			return fmt.Errorf("method %s: %w", m.Name, err)
		}
		e.line(2, "%s", st)
	}
	e.line(1, "}")
	return nil
}

func (e *emitter) stmt(s gen.Stmt) (string, error) {
	switch s := s.(type) {
	case *gen.Assign:
		left, err := e.expr(s.Left)
		if err != nil {
			return "", err
		}
		right, err := e.expr(s.Right)
		if err != nil {
			return "", err
		}
		return left + " = " + right + ";", nil
	case *gen.Return:
		v, err := e.expr(s.Value)
		if err != nil {
			return "", err
		}
		return "return " + v + ";", nil
	case *gen.Eval:
		x, err := e.expr(s.X)
		if err != nil {
			return "", err
		}
		return x + ";", nil
	case *gen.ReturnIfSet:
		return fmt.Sprintf("if (%s != null) return %s;", s.Field, s.Field), nil
	case *gen.Fail:
		return fmt.Sprintf("throw new VerifyError(%s);", strconv.Quote(s.Message)), nil
	case *gen.DeclareList:
		return fmt.Sprintf("%s %s = new %s<>();",
			e.typ(gen.ListOf(s.Elem)), s.Name, e.imports.ref(splitQualified(arrayList))), nil
	case *gen.Append:
		v, err := e.expr(s.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.add(%s);", s.List, v), nil
	default:
		return "", fmt.Errorf("unsupported statement %T", s)
	}
}

func (e *emitter) expr(x gen.Expr) (string, error) {
	switch x := x.(type) {
	case *gen.FieldRef:
		return x.Name, nil
	case *gen.ParamRef:
		return x.Name, nil
	case *gen.LocalRef:
		return x.Name, nil
	case *gen.StringLit:
		return strconv.Quote(x.Value), nil
	case *gen.Call:
		recv, err := e.expr(x.Recv)
		if err != nil {
			return "", err
		}
		args, err := e.args(x.Args)
		if err != nil {
			return "", err
		}
		return recv + "." + x.Method + "(" + args + ")", nil
	case *gen.StaticCall:
		if x.Type.IsPackage() {
			return "", fmt.Errorf("static call %s on package %s", x.Method, x.Type.PkgPath)
		}
		args, err := e.args(x.Args)
		if err != nil {
			return "", err
		}
		return e.typ(x.Type) + "." + x.Method + "(" + args + ")", nil
	case *gen.New:
		args, err := e.args(x.Args)
		if err != nil {
			return "", err
		}
		return "new " + e.typ(x.Type) + "(" + args + ")", nil
	default:
		return "", fmt.Errorf("unsupported expression %T", x)
	}
}

func (e *emitter) args(xs []gen.Expr) (string, error) {
	args := make([]string, 0, len(xs))
	for _, x := range xs {
		a, err := e.expr(x)
		if err != nil {
			return "", err
		}
		args = append(args, a)
	}
	return strings.Join(args, ", "), nil
}

// typ returns the Java spelling of t, importing it if needed. Pointers have
// no Java counterpart and are ignored.
func (e *emitter) typ(t *gen.TypeName) string {
	switch {
	case t == nil:
		return "void"
	case t.IsList():
		elem := e.typ(t.Elem)
		if b, ok := boxed[elem]; ok {
			elem = b
		}
		return e.imports.ref(splitQualified(listType)) + "<" + elem + ">"
	case t.PkgPath == "":
		if j, ok := builtins[t.Name]; ok {
			return j
		}
		return t.Name
	default:
		return e.imports.ref(t.PkgPath, t.Name)
	}
}

func splitQualified(q string) (string, string) {
	i := strings.LastIndexByte(q, '.')
	return q[:i], q[i+1:]
}

func modifiers(m gen.Modifier) string {
	var mods []string
	if m.Has(gen.Public) {
		mods = append(mods, "public")
	}
	if m.Has(gen.Private) {
		mods = append(mods, "private")
	}
	if m.Has(gen.Static) {
		mods = append(mods, "static")
	}
	return strings.Join(mods, " ")
}
