// Package load holds the component and entity descriptors produced by the
// discovery phase, and loads them from YAML or JSON manifest files.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest is a set of entity definitions and the components that use them.
type Manifest struct {
	Entities   Registry     `json:"entities,omitempty" yaml:"entities,omitempty" msgpack:"entities"`
	Components []*Component `json:"components,omitempty" yaml:"components,omitempty" msgpack:"components"`
}

// Entity describes an annotated preference entity. The generator refers to
// its wrapper type; it never mutates the descriptor.
type Entity struct {
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Package string `json:"package" yaml:"package" msgpack:"package"`
}

// Component describes an annotated preference component: the interface
// name, the ordered entity keys it exposes and the methods whose first
// parameter must be injected.
type Component struct {
	Name    string    `json:"name" yaml:"name" msgpack:"name"`
	Package string    `json:"package" yaml:"package" msgpack:"package"`
	Keys    []string  `json:"entities,omitempty" yaml:"entities,omitempty" msgpack:"keys"`
	Methods []*Method `json:"methods,omitempty" yaml:"methods,omitempty" msgpack:"methods"`
}

// Method is a method signature declared on the component interface.
// An empty Returns, or "void", marks a method without a result.
type Method struct {
	Name    string   `json:"name" yaml:"name" msgpack:"name"`
	Returns string   `json:"returns,omitempty" yaml:"returns,omitempty" msgpack:"returns"`
	Params  []*Param `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params"`
}

// Param is a method parameter. Type uses the qualified form accepted by
// gen.ParseType, e.g. "*example.com/app/model.Request" or "com.x.Request".
type Param struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Type string `json:"type" yaml:"type" msgpack:"type"`
}

// Void reports whether the method is declared without a result.
func (m *Method) Void() bool {
	return m.Returns == "" || m.Returns == "void"
}

// Registry maps entity keys to entity descriptors.
type Registry map[string]*Entity

// Lookup returns the entity registered under key.
func (r Registry) Lookup(key string) (*Entity, bool) {
	e, ok := r[key]
	if !ok || e == nil {
		return nil, false
	}
	return e, true
}

// Keys returns the registered keys in sorted order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Subset returns a registry holding only the given keys. Keys missing from r
// are left out.
func (r Registry) Subset(keys ...string) Registry {
	sub := make(Registry, len(keys))
	for _, k := range keys {
		if e, ok := r.Lookup(k); ok {
			sub[k] = e
		}
	}
	return sub
}

// Component returns the component with the given name.
func (m *Manifest) Component(name string) (*Component, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Validate checks the structural well-formedness of the manifest. Semantic
// checks (missing keys, name collisions, return types) belong to the
// generator.
func (m *Manifest) Validate() error {
	for _, key := range m.Entities.Keys() {
		e := m.Entities[key]
		switch {
		case e == nil:
			return fmt.Errorf("entity %q: missing definition", key)
		case e.Name == "":
			return fmt.Errorf("entity %q: missing name", key)
		case e.Package == "":
			return fmt.Errorf("entity %q: missing package", key)
		}
	}
	seen := make(map[string]bool, len(m.Components))
	for i, c := range m.Components {
		switch {
		case c == nil:
			return fmt.Errorf("component #%d: missing definition", i)
		case c.Name == "":
			return fmt.Errorf("component #%d: missing name", i)
		case c.Package == "":
			return fmt.Errorf("component %q: missing package", c.Name)
		case seen[c.Package+"."+c.Name]:
			return fmt.Errorf("component %q: defined twice in package %s", c.Name, c.Package)
		}
		seen[c.Package+"."+c.Name] = true
		for j, mt := range c.Methods {
			if mt == nil || mt.Name == "" {
				return fmt.Errorf("component %q: method #%d: missing name", c.Name, j)
			}
			for k, p := range mt.Params {
				if p == nil || p.Name == "" || p.Type == "" {
					return fmt.Errorf("component %q: method %q: param #%d: missing name or type", c.Name, mt.Name, k)
				}
			}
		}
	}
	return nil
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	m := &Manifest{}
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty manifest")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
