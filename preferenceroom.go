// Package preferenceroom is the runtime support package linked by code that
// the preferenceroom compiler generates.
//
// A generated component is a singleton façade over a set of entity wrappers.
// It is created once by its init function from a platform Context and then
// retrieved by its instance accessor for the rest of the process lifetime:
//
//	prefs.InitPreferenceComponent_Manager(appContext)
//	...
//	m := prefs.GetInstancePreferenceComponent_Manager()
//	user := m.User()
//
// Methods declared on the component interface are rewritten to hand their
// first argument to Inject, which delegates to the installed Injector.
package preferenceroom

import "sync"

// Context is the platform execution context a component is initialized with.
// Entity wrappers are always constructed from the application-wide context.
type Context interface {
	ApplicationContext() Context
}

// Injector injects dependency values into a target.
type Injector interface {
	Inject(target any)
}

// The InjectorFunc type is an adapter to allow the use of ordinary
// function as Injector.
type InjectorFunc func(target any)

// Inject calls f(target).
func (f InjectorFunc) Inject(target any) { f(target) }

var (
	injectorMu sync.RWMutex
	injector   Injector = InjectorFunc(func(any) {})
)

// SetInjector installs the injector used by Inject. Passing nil restores
// the default injector, which does nothing.
func SetInjector(i Injector) {
	injectorMu.Lock()
	defer injectorMu.Unlock()
	if i == nil {
		i = InjectorFunc(func(any) {})
	}
	injector = i
}

// Inject hands target to the installed injector. Generated component
// methods call it with their first argument.
func Inject(target any) {
	injectorMu.RLock()
	i := injector
	injectorMu.RUnlock()
	i.Inject(target)
}
