package gen

import (
	"fmt"
	"slices"

	"github.com/syssam/preferenceroom/compiler/load"
)

// Generator builds the class definition of one component. It reads its
// inputs and never mutates them; a Generator may be reused and independent
// Generators may run concurrently.
type Generator struct {
	component *load.Component
	entities  load.Registry
	resolver  TypeResolver
}

// NewGenerator creates a generator for the component, resolving its keys in
// entities and the well-known platform types with resolver.
func NewGenerator(component *load.Component, entities load.Registry, resolver TypeResolver) *Generator {
	return &Generator{
		component: component,
		entities:  entities,
		resolver:  resolver,
	}
}

// Generate is a shorthand for NewGenerator(component, entities, resolver).Generate().
func Generate(component *load.Component, entities load.Registry, resolver TypeResolver) (*Class, error) {
	return NewGenerator(component, entities, resolver).Generate()
}

// binding is a validated key with its entity and derived names.
type binding struct {
	key      string
	entity   *load.Entity
	field    string
	accessor string
	typ      *TypeName
}

// Generate validates the component and returns its class definition.
// It returns a *ValidationError, *LookupError or *CollisionError if the
// component cannot be generated, and never a partial class.
func (g *Generator) Generate() (*Class, error) {
	c := g.component
	if c == nil {
		return nil, NewValidationError("", "", nil, "missing component")
	}
	if c.Name == "" || c.Package == "" {
		return nil, NewValidationError(c.Name, "", nil, "component requires a name and a package")
	}
	bindings, err := g.bindings()
	if err != nil {
		return nil, err
	}
	if err := g.checkNames(bindings); err != nil {
		return nil, err
	}
	ctxType, err := g.resolve(PlatformContext)
	if err != nil {
		return nil, err
	}
	injector, err := g.resolve(InjectorType)
	if err != nil {
		return nil, err
	}
	overrides, err := g.overrideMethods(injector)
	if err != nil {
		return nil, err
	}

	class := &Class{
		Name:       ClassName(c.Name),
		Package:    c.Package,
		Component:  c.Name,
		Doc:        GeneratedDoc,
		Implements: &TypeName{PkgPath: c.Package, Name: c.Name},
		Keys:       slices.Clone(c.Keys),
	}
	self := class.Type()
	class.Fields = append(class.Fields, &Field{
		Name:      InstanceField,
		Type:      self,
		Modifiers: Private | Static,
	})
	for _, b := range bindings {
		class.Fields = append(class.Fields, &Field{
			Name:      b.field,
			Type:      b.typ,
			Modifiers: Private | Static,
			Key:       b.key,
		})
	}
	class.Methods = append(class.Methods,
		constructor(class, ctxType, bindings),
		initMethod(class, ctxType),
		getInstanceMethod(class),
	)
	class.Methods = append(class.Methods, overrides...)
	for _, b := range bindings {
		class.Methods = append(class.Methods, accessor(b))
	}
	class.Methods = append(class.Methods, nameListMethod(bindings))
	return class, nil
}

// bindings resolves the component keys in declaration order.
func (g *Generator) bindings() ([]*binding, error) {
	c := g.component
	seen := make(map[string]bool, len(c.Keys))
	bindings := make([]*binding, 0, len(c.Keys))
	for _, key := range c.Keys {
		if key == "" {
			return nil, NewValidationError(c.Name, "", key, "empty entity key")
		}
		if seen[key] {
			return nil, NewValidationError(c.Name, key, key, "duplicate entity key")
		}
		seen[key] = true
		e, ok := g.entities.Lookup(key)
		if !ok {
			return nil, NewLookupError(c.Name, "entity", key)
		}
		b := &binding{
			key:      key,
			entity:   e,
			field:    EntityFieldName(key),
			accessor: AccessorName(key),
			typ:      ClassType(e.Package, EntityClassName(e.Name)),
		}
		if !IsIdentifier(b.accessor) {
			return nil, NewValidationError(c.Name, key, b.accessor, fmt.Sprintf("key derives invalid identifier %q", b.accessor))
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// checkNames fails on two members deriving the same identifier. Fields keep
// their exact name; methods are compared in exported form since targets
// without member visibility keywords export public methods by case.
func (g *Generator) checkNames(bindings []*binding) error {
	c := g.component
	used := make(map[string]string)
	claim := func(ident, source string) error {
		if prev, ok := used[ident]; ok {
			return NewCollisionError(c.Name, ident, prev, source)
		}
		used[ident] = source
		return nil
	}
	if err := claim(InstanceField, "singleton field"); err != nil {
		return err
	}
	for _, name := range reservedMembers {
		if err := claim(Exported(name), fmt.Sprintf("reserved member %q", name)); err != nil {
			return err
		}
	}
	for _, b := range bindings {
		if err := claim(b.field, fmt.Sprintf("key %q", b.key)); err != nil {
			return err
		}
	}
	for _, b := range bindings {
		if err := claim(Exported(b.accessor), fmt.Sprintf("key %q", b.key)); err != nil {
			return err
		}
	}
	for _, m := range c.Methods {
		if m == nil {
			continue
		}
		if err := claim(Exported(m.Name), fmt.Sprintf("method %q", m.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) resolve(name string) (*TypeName, error) {
	if g.resolver == nil {
		return nil, NewLookupError(g.component.Name, "type", name)
	}
	t, ok := g.resolver.ResolveType(name)
	if !ok {
		return nil, NewLookupError(g.component.Name, "type", name)
	}
	return t, nil
}

// overrideMethods rewrites every declared method so that it injects its
// first parameter and returns nothing.
func (g *Generator) overrideMethods(injector *TypeName) ([]*Method, error) {
	c := g.component
	methods := make([]*Method, 0, len(c.Methods))
	for _, m := range c.Methods {
		if m == nil {
			return nil, NewValidationError(c.Name, "", nil, "missing method definition")
		}
		if !IsIdentifier(m.Name) {
			return nil, NewValidationError(c.Name, m.Name, m.Name, "invalid method name")
		}
		if !m.Void() {
			return nil, NewValidationError(c.Name, m.Name, m.Returns,
				fmt.Sprintf("returned '%s'. only return type can be void.", m.Returns))
		}
		if len(m.Params) == 0 {
			return nil, NewValidationError(c.Name, m.Name, nil, "method requires at least one parameter to inject")
		}
		params := make([]*Param, 0, len(m.Params))
		names := make(map[string]bool, len(m.Params))
		for _, p := range m.Params {
			if p == nil || !IsIdentifier(p.Name) {
				return nil, NewValidationError(c.Name, m.Name, nil, "invalid parameter name")
			}
			if names[p.Name] {
				return nil, NewValidationError(c.Name, m.Name, p.Name, fmt.Sprintf("duplicate parameter %q", p.Name))
			}
			names[p.Name] = true
			typ, err := ParseType(p.Type)
			if err != nil {
				verr := NewValidationError(c.Name, m.Name, p.Type, fmt.Sprintf("parameter %q", p.Name))
				verr.Cause = err
				return nil, verr
			}
			if typ == nil {
				return nil, NewValidationError(c.Name, m.Name, p.Type, fmt.Sprintf("parameter %q has no type", p.Name))
			}
			params = append(params, &Param{Name: p.Name, Type: typ})
		}
		methods = append(methods, &Method{
			Name:      m.Name,
			Kind:      KindInjection,
			Modifiers: Public,
			Override:  true,
			Params:    params,
			Body: []Stmt{
				&Eval{X: &StaticCall{
					Type:   injector,
					Method: InjectMethod,
					Args:   []Expr{&ParamRef{Name: params[0].Name}},
				}},
			},
		})
	}
	return methods, nil
}

func constructor(class *Class, ctxType *TypeName, bindings []*binding) *Method {
	m := &Method{
		Name:      class.Name,
		Kind:      KindConstructor,
		Modifiers: Private,
		Params:    []*Param{{Name: ContextParam, Type: ctxType, NonNull: true}},
	}
	for _, b := range bindings {
		m.Body = append(m.Body, &Assign{
			Left: &FieldRef{Name: b.field, Static: true},
			Right: &StaticCall{
				Type:   b.typ,
				Method: GetInstanceMethod,
				Args: []Expr{&Call{
					Recv:   &ParamRef{Name: ContextParam},
					Method: ApplicationContextMethod,
				}},
			},
		})
	}
	return m
}

func initMethod(class *Class, ctxType *TypeName) *Method {
	instance := &FieldRef{Name: InstanceField, Static: true}
	return &Method{
		Name:      InitMethod,
		Kind:      KindInit,
		Modifiers: Public | Static,
		Params:    []*Param{{Name: ContextParam, Type: ctxType, NonNull: true}},
		Returns:   class.Type(),
		Body: []Stmt{
			&ReturnIfSet{Field: InstanceField},
			&Assign{Left: instance, Right: &New{Type: class.Type(), Args: []Expr{&ParamRef{Name: ContextParam}}}},
			&Return{Value: instance},
		},
	}
}

func getInstanceMethod(class *Class) *Method {
	return &Method{
		Name:      GetInstanceMethod,
		Kind:      KindGetInstance,
		Modifiers: Public | Static,
		Returns:   class.Type(),
		Body: []Stmt{
			&ReturnIfSet{Field: InstanceField},
			&Fail{Message: NotInitializedMessage},
		},
	}
}

func accessor(b *binding) *Method {
	return &Method{
		Name:      b.accessor,
		Kind:      KindAccessor,
		Modifiers: Public,
		Returns:   b.typ,
		Key:       b.key,
		Body:      []Stmt{&Return{Value: &FieldRef{Name: b.field, Static: true}}},
	}
}

const nameListLocal = "entityNameList"

func nameListMethod(bindings []*binding) *Method {
	str := Builtin("string")
	m := &Method{
		Name:      NameListMethod,
		Kind:      KindNameList,
		Modifiers: Public,
		Returns:   ListOf(str),
		Body:      []Stmt{&DeclareList{Name: nameListLocal, Elem: str}},
	}
	for _, b := range bindings {
		m.Body = append(m.Body, &Append{List: nameListLocal, Value: &StringLit{Value: b.key}})
	}
	m.Body = append(m.Body, &Return{Value: &LocalRef{Name: nameListLocal}})
	return m
}
