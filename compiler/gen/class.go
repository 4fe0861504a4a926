package gen

// Modifier is a visibility or storage qualifier of a class member.
type Modifier uint8

// Member modifiers.
const (
	Public Modifier = 1 << iota
	Private
	Static
)

// Has reports whether m includes all of the given modifiers.
func (m Modifier) Has(o Modifier) bool { return m&o == o }

// String returns the modifiers in declaration order, e.g. "private static".
func (m Modifier) String() string {
	var s string
	for _, v := range []struct {
		mod  Modifier
		name string
	}{{Public, "public"}, {Private, "private"}, {Static, "static"}} {
		if m.Has(v.mod) {
			if s != "" {
				s += " "
			}
			s += v.name
		}
	}
	return s
}

// MethodKind tags the role a method plays in the generated class, so
// dialects can apply target-language idioms without re-deriving it.
type MethodKind uint8

// Method kinds.
const (
	KindConstructor MethodKind = iota + 1
	KindInit
	KindGetInstance
	KindInjection
	KindAccessor
	KindNameList
)

var kindNames = [...]string{
	KindConstructor: "constructor",
	KindInit:        "init",
	KindGetInstance: "getInstance",
	KindInjection:   "injection",
	KindAccessor:    "accessor",
	KindNameList:    "nameList",
}

func (k MethodKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Class is the neutral definition of a generated component class. It is
// built once per generation call and never mutated afterwards.
type Class struct {
	Name       string    // Generated class name, e.g. PreferenceComponent_Manager.
	Package    string    // Package of the component.
	Component  string    // Name of the source component.
	Doc        string    // Class documentation.
	Implements *TypeName // The component type the class implements.
	Keys       []string  // Entity keys, in declaration order.
	Fields     []*Field
	Methods    []*Method
}

// Type returns the class as a type reference.
func (c *Class) Type() *TypeName {
	return ClassType(c.Package, c.Name)
}

// Field returns the field with the given name.
func (c *Class) Field(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Method returns the first method with the given name.
func (c *Class) Method(name string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// MethodsOf returns the methods of the given kind, in class order.
func (c *Class) MethodsOf(kind MethodKind) []*Method {
	var ms []*Method
	for _, m := range c.Methods {
		if m.Kind == kind {
			ms = append(ms, m)
		}
	}
	return ms
}

// Field is a class field.
type Field struct {
	Name      string
	Type      *TypeName
	Modifiers Modifier
	Key       string // Entity key the field holds, if any.
}

// Param is a method parameter.
type Param struct {
	Name    string
	Type    *TypeName
	NonNull bool
}

// Method is a class method or constructor. A nil Returns means void.
type Method struct {
	Name      string
	Kind      MethodKind
	Modifiers Modifier
	Params    []*Param
	Returns   *TypeName
	Body      []Stmt
	Override  bool
	Key       string // Entity key the accessor exposes, if any.
}

// Stmt is a statement in a method body.
type Stmt interface{ stmt() }

// Expr is an expression in a statement.
type Expr interface{ expr() }

type (
	// Assign assigns Right to Left.
	Assign struct{ Left, Right Expr }
	// Return returns Value, or nothing if Value is nil.
	Return struct{ Value Expr }
	// Eval evaluates X for its side effects.
	Eval struct{ X Expr }
	// ReturnIfSet returns the static field if it holds a value.
	ReturnIfSet struct{ Field string }
	// Fail aborts the method with Message.
	Fail struct{ Message string }
	// DeclareList declares an empty local list of Elem.
	DeclareList struct {
		Name string
		Elem *TypeName
	}
	// Append appends Value to the local list.
	Append struct {
		List  string
		Value Expr
	}
)

func (*Assign) stmt()      {}
func (*Return) stmt()      {}
func (*Eval) stmt()        {}
func (*ReturnIfSet) stmt() {}
func (*Fail) stmt()        {}
func (*DeclareList) stmt() {}
func (*Append) stmt()      {}

type (
	// FieldRef refers to a field of the class.
	FieldRef struct {
		Name   string
		Static bool
	}
	// ParamRef refers to a method parameter.
	ParamRef struct{ Name string }
	// LocalRef refers to a local variable.
	LocalRef struct{ Name string }
	// Call invokes Method on the value of Recv.
	Call struct {
		Recv   Expr
		Method string
		Args   []Expr
	}
	// StaticCall invokes a static Method of Type. A Type without a name
	// denotes a package-level function.
	StaticCall struct {
		Type   *TypeName
		Method string
		Args   []Expr
	}
	// New constructs a new instance of Type.
	New struct {
		Type *TypeName
		Args []Expr
	}
	// StringLit is a string literal.
	StringLit struct{ Value string }
)

func (*FieldRef) expr()   {}
func (*ParamRef) expr()   {}
func (*LocalRef) expr()   {}
func (*Call) expr()       {}
func (*StaticCall) expr() {}
func (*New) expr()        {}
func (*StringLit) expr()  {}
