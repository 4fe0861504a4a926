package gen

import (
	"go/token"
	"strings"

	"github.com/go-openapi/inflect"
)

// Naming conventions of the generated class. Changing any of them changes
// the generated API.
const (
	// ClassPrefix prefixes the component name to form the class name.
	ClassPrefix = "PreferenceComponent_"
	// EntityPrefix prefixes the entity name to form its wrapper type name.
	EntityPrefix = "Preference_"
	// InstanceField is the singleton field, and the prefix of entity fields.
	InstanceField = "instance"
	// ContextParam is the context parameter of the constructor and init.
	ContextParam = "context"
	// EntityNameList is the suffix of the name-list accessor.
	EntityNameList = "EntityNameList"

	// InitMethod initializes the singleton.
	InitMethod = "init"
	// GetInstanceMethod returns the initialized singleton.
	GetInstanceMethod = "getInstance"
	// NameListMethod returns the entity keys.
	NameListMethod = "get" + EntityNameList
	// ApplicationContextMethod returns the application-wide context.
	ApplicationContextMethod = "getApplicationContext"
	// InjectMethod is the static injection operation of the injector.
	InjectMethod = "inject"

	// NotInitializedMessage is the failure message of getInstance.
	NotInitializedMessage = "component is not initialized."
	// GeneratedDoc documents every generated class.
	GeneratedDoc = "Generated by PreferenceRoom. (https://github.com/skydoves/PreferenceRoom)."
)

// reservedMembers are the member names the generated class always declares.
var reservedMembers = []string{InitMethod, GetInstanceMethod, NameListMethod}

// UpperCamel converts a key to upper camel case. Words are split at '_',
// '-', ':', whitespace and lower-to-upper case changes; the first letter of
// every word is upper-cased, the rest lower-cased, and separators dropped:
//
//	user        -> User
//	user_id     -> UserId
//	userId      -> UserId
//	dark-mode   -> DarkMode
//	userID      -> UserID
//
// Distinct keys may therefore map to the same identifier; the generator
// rejects such components with a CollisionError.
func UpperCamel(key string) string {
	if key == "" {
		return ""
	}
	return inflect.Camelize(key)
}

// ClassName returns the generated class name of a component.
func ClassName(component string) string {
	return ClassPrefix + component
}

// EntityClassName returns the wrapper type name of an entity.
func EntityClassName(entity string) string {
	return EntityPrefix + entity
}

// EntityFieldName returns the field holding the entity of key.
func EntityFieldName(key string) string {
	return InstanceField + UpperCamel(key)
}

// AccessorName returns the accessor method exposing the entity of key.
func AccessorName(key string) string {
	return UpperCamel(key)
}

// IsIdentifier reports whether name can be used as a member name.
func IsIdentifier(name string) bool {
	return token.IsIdentifier(name)
}

// Exported returns name with its first letter upper-cased.
func Exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
