package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/preferenceroom/compiler/gen"
)

// genClass generates the file of one component class.
func genClass(c *gen.Class, pkgName string) (*jen.File, error) {
	f := jen.NewFilePathName(c.Package, pkgName)
	f.ImportName(RuntimePkg, PackageName(RuntimePkg))
	self := c.Type()
	r := &renderer{class: c, recv: "c"}

	// Singleton slot
	f.Var().Id(singletonVar(c)).Op("=").Qual(RuntimePkg, "NewSingleton").
		Index(typeCode(self)).Call(jen.Lit(c.Name))

	// Class struct
	f.Comment(c.Name + " implements " + c.Implements.Name + ".")
	f.Comment(c.Doc)
	f.Type().Id(c.Name).StructFunc(func(group *jen.Group) {
		for _, fd := range c.Fields {
			if fd.Name == gen.InstanceField {
				continue
			}
			group.Id(fd.Name).Add(typeCode(fd.Type))
		}
	})
	f.Var().Id("_").Add(typeCode(c.Implements)).Op("=").Parens(typeCode(self)).Call(jen.Nil())

	for _, m := range c.Methods {
		var err error
		switch m.Kind {
		case gen.KindConstructor:
			err = genConstructor(f, r, m)
		case gen.KindInit:
			genInit(f, c, m)
		case gen.KindGetInstance:
			genGetInstance(f, c, m)
		default:
			err = genMethod(f, r, m)
		}
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
	}
	return f, nil
}

// genConstructor generates new<Class>, assigning the entity singletons.
func genConstructor(f *jen.File, r *renderer, m *gen.Method) error {
	c := r.class
	cr := r.method(m)
	body, err := cr.body(m.Body)
	if err != nil {
		return err
	}
	name := constructorName(c.Name)
	f.Comment(name + " returns a new " + c.Name + " bound to the application context.")
	f.Func().Id(name).Params(cr.params(m.Params)...).Add(typeCode(c.Type())).BlockFunc(func(grp *jen.Group) {
		grp.Id(cr.recv).Op(":=").Op("&").Id(c.Name).Values()
		for _, s := range body {
			grp.Add(s)
		}
		grp.Return(jen.Id(cr.recv))
	})
	return nil
}

// genInit generates the Init<Class> package func. The singleton slot keeps
// the first constructed value.
func genInit(f *jen.File, c *gen.Class, m *gen.Method) {
	name := funcName(m.Name, c.Type())
	params := make([]jen.Code, 0, len(m.Params))
	args := make([]jen.Code, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, jen.Id(p.Name).Add(typeCode(p.Type)))
		args = append(args, jen.Id(p.Name))
	}
	f.Comment(name + " initializes the " + c.Name + " singleton once and returns it.")
	f.Func().Id(name).Params(params...).Add(typeCode(m.Returns)).Block(
		jen.Return(jen.Id(singletonVar(c)).Dot("Init").Call(
			jen.Func().Params().Add(typeCode(m.Returns)).Block(
				jen.Return(jen.Id(constructorName(c.Name)).Call(args...)),
			),
		)),
	)
}

// genGetInstance generates the GetInstance<Class> package func.
func genGetInstance(f *jen.File, c *gen.Class, m *gen.Method) {
	name := funcName(m.Name, c.Type())
	f.Comment(name + " returns the initialized " + c.Name + " singleton.")
	f.Comment("It panics with a *preferenceroom.NotInitializedError if " + funcName(gen.InitMethod, c.Type()) + " was not called.")
	f.Func().Id(name).Params().Add(typeCode(m.Returns)).Block(
		jen.Return(jen.Id(singletonVar(c)).Dot("MustGet").Call()),
	)
}

// genMethod generates an instance method of the class.
func genMethod(f *jen.File, r *renderer, m *gen.Method) error {
	mr := r.method(m)
	body, err := mr.body(m.Body)
	if err != nil {
		return err
	}
	name := m.Name
	if m.Modifiers.Has(gen.Public) {
		name = methodName(name)
	}
	switch m.Kind {
	case gen.KindAccessor:
		f.Comment(name + " returns the " + m.Returns.Name + " singleton of the " + m.Key + " entity.")
	case gen.KindNameList:
		f.Comment(name + " returns the keys of the component entities, in declaration order.")
	case gen.KindInjection:
		f.Comment(name + " injects the component entities into " + mr.param(m.Params[0].Name) + ".")
	}
	fn := f.Func().Params(jen.Id(mr.recv).Add(typeCode(r.class.Type()))).Id(name).Params(mr.params(m.Params)...)
	if m.Returns != nil {
		fn.Add(typeCode(m.Returns))
	}
	fn.Block(body...)
	return nil
}

// bodyBuiltins are the predeclared identifiers method bodies may refer to.
var bodyBuiltins = []string{"append", "nil", "panic"}

// renderer renders statements of a class method.
type renderer struct {
	class *gen.Class
	recv  string
	// names maps parameters to their names in the generated code.
	names map[string]string
}

// method returns the renderer of m. Parameters named like a package or
// builtin the body refers to are suffixed with "_", and so is a receiver
// name taken by a parameter.
func (r *renderer) method(m *gen.Method) *renderer {
	reserved := make(map[string]bool)
	for _, b := range bodyBuiltins {
		reserved[b] = true
	}
	for _, pkg := range bodyPackages(m.Body) {
		reserved[PackageName(pkg)] = true
	}
	mr := &renderer{class: r.class, recv: r.recv, names: make(map[string]string, len(m.Params))}
	taken := make(map[string]bool, len(m.Params))
	for _, p := range m.Params {
		taken[p.Name] = true
	}
	for _, p := range m.Params {
		name := p.Name
		if reserved[name] {
			delete(taken, name)
			for reserved[name] || taken[name] {
				name += "_"
			}
			taken[name] = true
		}
		mr.names[p.Name] = name
	}
	for taken[mr.recv] {
		mr.recv += "_"
	}
	return mr
}

// param returns the generated name of parameter name.
func (r *renderer) param(name string) string {
	if n, ok := r.names[name]; ok {
		return n
	}
	return name
}

func (r *renderer) params(ps []*gen.Param) []jen.Code {
	params := make([]jen.Code, 0, len(ps))
	for _, p := range ps {
		params = append(params, jen.Id(r.param(p.Name)).Add(typeCode(p.Type)))
	}
	return params
}

func (r *renderer) body(stmts []gen.Stmt) ([]jen.Code, error) {
	body := make([]jen.Code, 0, len(stmts))
	for _, s := range stmts {
		code, err := r.stmt(s)
		if err != nil {
			return nil, err
		}
		body = append(body, code)
	}
	return body, nil
}

func (r *renderer) stmt(s gen.Stmt) (jen.Code, error) {
	switch s := s.(type) {
	case *gen.Assign:
		left, err := r.expr(s.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.expr(s.Right)
		if err != nil {
			return nil, err
		}
		return left.Op("=").Add(right), nil
	case *gen.Return:
		v, err := r.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return jen.Return(v), nil
	case *gen.Eval:
		return r.expr(s.X)
	case *gen.ReturnIfSet:
		field := jen.Id(r.recv).Dot(s.Field)
		return jen.If(field.Clone().Op("!=").Nil()).Block(jen.Return(field)), nil
	case *gen.Fail:
		return jen.Panic(jen.Lit(s.Message)), nil
	case *gen.DeclareList:
		return jen.Id(s.Name).Op(":=").Index().Add(typeCode(s.Elem)).Values(), nil
	case *gen.Append:
		v, err := r.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return jen.Id(s.List).Op("=").Append(jen.Id(s.List), v), nil
	default:
		return nil, fmt.Errorf("unsupported statement %T", s)
	}
}

func (r *renderer) expr(e gen.Expr) (*jen.Statement, error) {
	switch e := e.(type) {
	case *gen.FieldRef:
		return jen.Id(r.recv).Dot(e.Name), nil
	case *gen.ParamRef:
		return jen.Id(r.param(e.Name)), nil
	case *gen.LocalRef:
		return jen.Id(e.Name), nil
	case *gen.Call:
		recv, err := r.expr(e.Recv)
		if err != nil {
			return nil, err
		}
		args, err := r.args(e.Args)
		if err != nil {
			return nil, err
		}
		return recv.Dot(methodName(e.Method)).Call(args...), nil
	case *gen.StaticCall:
		args, err := r.args(e.Args)
		if err != nil {
			return nil, err
		}
		return jen.Qual(e.Type.PkgPath, funcName(e.Method, e.Type)).Call(args...), nil
	case *gen.New:
		args, err := r.args(e.Args)
		if err != nil {
			return nil, err
		}
		return jen.Qual(e.Type.PkgPath, constructorName(e.Type.Name)).Call(args...), nil
	case *gen.StringLit:
		return jen.Lit(e.Value), nil
	default:
		return nil, fmt.Errorf("unsupported expression %T", e)
	}
}

func (r *renderer) args(es []gen.Expr) ([]jen.Code, error) {
	args := make([]jen.Code, 0, len(es))
	for _, e := range es {
		a, err := r.expr(e)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

// bodyPackages returns the import paths of the packages stmts refer to.
func bodyPackages(stmts []gen.Stmt) []string {
	var pkgs []string
	var walk func(gen.Expr)
	walk = func(e gen.Expr) {
		switch e := e.(type) {
		case *gen.Call:
			walk(e.Recv)
			for _, a := range e.Args {
				walk(a)
			}
		case *gen.StaticCall:
			pkgs = append(pkgs, e.Type.PkgPath)
			for _, a := range e.Args {
				walk(a)
			}
		case *gen.New:
			pkgs = append(pkgs, e.Type.PkgPath)
			for _, a := range e.Args {
				walk(a)
			}
		}
	}
	for _, s := range stmts {
		switch s := s.(type) {
		case *gen.Assign:
			walk(s.Left)
			walk(s.Right)
		case *gen.Return:
			walk(s.Value)
		case *gen.Eval:
			walk(s.X)
		case *gen.Append:
			walk(s.Value)
		case *gen.DeclareList:
			if s.Elem != nil && s.Elem.PkgPath != "" {
				pkgs = append(pkgs, s.Elem.PkgPath)
			}
		}
	}
	return pkgs
}

// typeCode returns the Go type of t. Predeclared and local types have no
// package path; class types are pointers.
func typeCode(t *gen.TypeName) *jen.Statement {
	if t.IsList() {
		return jen.Index().Add(typeCode(t.Elem))
	}
	var s *jen.Statement
	if t.PkgPath == "" {
		s = jen.Id(t.Name)
	} else {
		s = jen.Qual(t.PkgPath, t.Name)
	}
	if t.Pointer {
		return jen.Op("*").Add(s)
	}
	return s
}
