// Package gen builds the singleton façade class of a preference component.
//
// A component is an interface naming an ordered set of entity keys and a
// set of methods whose first parameter must be injected. Given the
// component, the registry of entities and a resolver for the platform
// types, the Generator produces a Class: a neutral definition of fields,
// constructor and methods that a Dialect renders as source code.
//
// # Architecture
//
//	load.Component + load.Registry
//	        ↓
//	   Generator (validation, naming)
//	        ↓
//	   Class (fields, methods, statements)
//	        ↓
//	   Dialect (golang, java)
//	        ↓
//	   Writer (goimports, files)
//
// # Generated Class
//
// For a component Manager with keys "user" and "app" the class is
// PreferenceComponent_Manager with:
//
//   - private static instance of the class itself
//   - private static instanceUser and instanceApp, typed Preference_User
//     and Preference_App
//   - a private constructor taking the platform context, assigning every
//     entity field from Preference_X.getInstance(context.getApplicationContext())
//   - public static init(context), idempotent
//   - public static getInstance(), failing before init
//   - one override per declared method, calling inject(firstParam)
//   - public accessors User() and App()
//   - public getEntityNameList(), returning ["user", "app"]
//
// Field, accessor and name-list order always follows the key order.
//
// # Error Handling
//
// Generation fails without partial output:
//
//   - ValidationError: non-void method, method without parameters,
//     duplicate or empty key, key deriving an invalid identifier
//   - LookupError: key missing from the registry, unresolvable platform type
//   - CollisionError: two members deriving the same identifier, e.g. the
//     keys "user_id" and "userId"
//
// Example:
//
//	class, err := gen.Generate(component, entities, dialect.Resolver())
//	if err != nil {
//	    if gen.IsCollisionError(err) {
//	        // rename a key
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./prefs"),
//	    gen.WithDialect("go"),
//	    gen.WithCache(true),
//	)
package gen
