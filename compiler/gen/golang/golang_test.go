package golang

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/preferenceroom/compiler/gen"
	"github.com/syssam/preferenceroom/compiler/load"
)

var registry = load.Registry{
	"user":   {Name: "User", Package: "example.com/app/prefs"},
	"app":    {Name: "App", Package: "example.com/app/prefs"},
	"device": {Name: "Device", Package: "example.com/app/device"},
}

func render(t *testing.T, c *load.Component) string {
	t.Helper()
	class, err := gen.Generate(c, registry, Dialect{}.Resolver())
	require.NoError(t, err)
	out, err := Dialect{}.Render(class, gen.DefaultHeader)
	require.NoError(t, err)
	_, err = parser.ParseFile(token.NewFileSet(), "out.go", out, parser.ParseComments)
	require.NoError(t, err, string(out))
	return string(out)
}

func TestDialect_Registered(t *testing.T) {
	d, err := gen.DialectByName("go")
	require.NoError(t, err)
	assert.Equal(t, Name, d.Name())
}

func TestDialect_Resolver(t *testing.T) {
	ctx, ok := Dialect{}.Resolver().ResolveType(gen.PlatformContext)
	require.True(t, ok)
	assert.Equal(t, &gen.TypeName{PkgPath: RuntimePkg, Name: "Context"}, ctx)

	injector, ok := Dialect{}.Resolver().ResolveType(gen.InjectorType)
	require.True(t, ok)
	assert.True(t, injector.IsPackage())
}

func TestDialect_FileName(t *testing.T) {
	tests := []struct {
		component string
		pkg       string
		expected  string
	}{
		{"Manager", "example.com/app/prefs", "prefs/preferencecomponent_manager.go"},
		{"UserSettings", "example.com/app/prefs", "prefs/preferencecomponent_user_settings.go"},
		{"Manager", "com.skydoves.sample", "sample/preferencecomponent_manager.go"},
		{"Manager", "example.com/app/prefs/v2", "prefs/preferencecomponent_manager.go"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			c := &gen.Class{Name: gen.ClassName(tt.component), Component: tt.component, Package: tt.pkg}
			assert.Equal(t, tt.expected, Dialect{}.FileName(c))
		})
	}
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "prefs", PackageName("example.com/app/prefs"))
	assert.Equal(t, "sample", PackageName("com.skydoves.sample"))
	assert.Equal(t, "prefs", PackageName("prefs"))
	assert.Equal(t, "prefs", PackageName("example.com/Prefs"))
	assert.Equal(t, "prefs", PackageName("example.com/app/prefs/v2"))
	assert.Equal(t, "prefs", PackageName("example.com/app/prefs/v12/"))
	assert.Equal(t, "v0", PackageName("example.com/app/v0"))
	assert.Equal(t, "vendor", PackageName("example.com/app/vendor"))
	assert.Equal(t, "v2", PackageName("v2"))
}

func TestRender_Manager(t *testing.T) {
	code := render(t, &load.Component{Name: "Manager", Package: "example.com/app/prefs", Keys: []string{"user", "app"}})

	for _, want := range []string{
		"// Code generated by preferenceroom. DO NOT EDIT.",
		"package prefs",
		`"github.com/syssam/preferenceroom"`,
		`var instancePreferenceComponent_Manager = preferenceroom.NewSingleton[*PreferenceComponent_Manager]("PreferenceComponent_Manager")`,
		"// PreferenceComponent_Manager implements Manager.",
		"// " + gen.GeneratedDoc,
		"type PreferenceComponent_Manager struct {",
		"var _ Manager = (*PreferenceComponent_Manager)(nil)",
		"func newPreferenceComponent_Manager(context preferenceroom.Context) *PreferenceComponent_Manager {",
		"c := &PreferenceComponent_Manager{}",
		"c.instanceUser = GetInstancePreference_User(context.ApplicationContext())",
		"c.instanceApp = GetInstancePreference_App(context.ApplicationContext())",
		"func InitPreferenceComponent_Manager(context preferenceroom.Context) *PreferenceComponent_Manager {",
		"return instancePreferenceComponent_Manager.Init(func() *PreferenceComponent_Manager {",
		"return newPreferenceComponent_Manager(context)",
		"func GetInstancePreferenceComponent_Manager() *PreferenceComponent_Manager {",
		"return instancePreferenceComponent_Manager.MustGet()",
		"func (c *PreferenceComponent_Manager) User() *Preference_User {",
		"return c.instanceUser",
		"func (c *PreferenceComponent_Manager) App() *Preference_App {",
		"func (c *PreferenceComponent_Manager) GetEntityNameList() []string {",
		"entityNameList := []string{}",
		`entityNameList = append(entityNameList, "user")`,
		`entityNameList = append(entityNameList, "app")`,
		"return entityNameList",
	} {
		assert.Contains(t, code, want)
	}
	assert.Regexp(t, `instanceUser\s+\*Preference_User`, code)
	assert.Regexp(t, `instanceApp\s+\*Preference_App`, code)
	assert.Less(t, strings.Index(code, `"user")`), strings.Index(code, `"app")`), "name list keeps key order")
	assert.Less(t, strings.Index(code, ") User()"), strings.Index(code, ") App()"), "accessors keep key order")
}

func TestRender_ForeignEntityPackage(t *testing.T) {
	code := render(t, &load.Component{Name: "Settings", Package: "example.com/app/prefs", Keys: []string{"device"}})

	assert.Contains(t, code, `"example.com/app/device"`)
	assert.Contains(t, code, "c.instanceDevice = device.GetInstancePreference_Device(context.ApplicationContext())")
	assert.Contains(t, code, "func (c *PreferenceComponent_Settings) Device() *device.Preference_Device {")
}

func TestRender_Injection(t *testing.T) {
	code := render(t, &load.Component{
		Name:    "Settings",
		Package: "example.com/app/prefs",
		Keys:    []string{"app"},
		Methods: []*load.Method{
			{Name: "sync", Params: []*load.Param{{Name: "r", Type: "*example.com/app/model.Request"}}},
			{Name: "Bind", Params: []*load.Param{
				{Name: "c", Type: "*example.com/app/ui.Screen"},
				{Name: "force", Type: "bool"},
			}},
		},
	})

	assert.Contains(t, code, `"example.com/app/model"`)
	assert.Contains(t, code, "func (c *PreferenceComponent_Settings) Sync(r *model.Request) {")
	assert.Contains(t, code, "preferenceroom.Inject(r)")
	assert.Contains(t, code, "func (c_ *PreferenceComponent_Settings) Bind(c *ui.Screen, force bool) {")
	assert.Contains(t, code, "preferenceroom.Inject(c)")
	assert.Less(t, strings.Index(code, ") Sync("), strings.Index(code, ") App()"), "overrides precede accessors")
}

func TestRender_ParamShadowsImport(t *testing.T) {
	code := render(t, &load.Component{
		Name:    "Manager",
		Package: "example.com/app/prefs",
		Keys:    []string{"user"},
		Methods: []*load.Method{
			{Name: "Bind", Params: []*load.Param{{Name: "preferenceroom", Type: "*example.com/app/ui.Screen"}}},
			{Name: "Attach", Params: []*load.Param{
				{Name: "preferenceroom", Type: "int"},
				{Name: "preferenceroom_", Type: "string"},
			}},
		},
	})

	assert.Contains(t, code, "func (c *PreferenceComponent_Manager) Bind(preferenceroom_ *ui.Screen) {")
	assert.Contains(t, code, "preferenceroom.Inject(preferenceroom_)")
	assert.Contains(t, code, "func (c *PreferenceComponent_Manager) Attach(preferenceroom__ int, preferenceroom_ string) {")
	assert.Contains(t, code, "preferenceroom.Inject(preferenceroom__)")
	assert.NotContains(t, code, "preferenceroom.Inject(preferenceroom)")
}

type unknownStmt struct{ gen.Stmt }

func TestRender_UnsupportedNode(t *testing.T) {
	tests := map[string]gen.Stmt{
		"statement":  unknownStmt{},
		"expression": &gen.Eval{},
	}
	for name, stmt := range tests {
		t.Run(name, func(t *testing.T) {
			class, err := gen.Generate(&load.Component{Name: "Manager", Package: "example.com/app/prefs", Keys: []string{"user"}}, registry, resolver)
			require.NoError(t, err)
			class.Methods = append(class.Methods, &gen.Method{Name: "broken", Kind: gen.KindNameList, Body: []gen.Stmt{stmt}})
			_, err = Dialect{}.Render(class, gen.DefaultHeader)
			require.Error(t, err)
			assert.True(t, gen.IsGenerationError(err))
			assert.Contains(t, err.Error(), "unsupported")
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	c := &load.Component{Name: "Manager", Package: "example.com/app/prefs", Keys: []string{"user", "app", "device"}}
	assert.Equal(t, render(t, c), render(t, c))
}

func TestRender_InvalidPackage(t *testing.T) {
	class, err := gen.Generate(&load.Component{Name: "Manager", Package: "example.com/app/my-prefs"}, registry, resolver)
	require.NoError(t, err)
	_, err = Dialect{}.Render(class, gen.DefaultHeader)
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
}
