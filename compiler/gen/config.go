package gen

import "runtime"

// DefaultHeader is the header comment of every generated file.
const DefaultHeader = "Code generated by preferenceroom. DO NOT EDIT."

// DefaultDialect is the dialect used when none is configured.
const DefaultDialect = "go"

// Config holds the global configuration for code generation.
type Config struct {
	// Target is the output directory of the generated files.
	Target string
	// Header is the comment written at the top of every generated file.
	Header string
	// Dialect names the target language renderer, see RegisterDialect.
	Dialect string
	// Workers bounds the number of components generated in parallel.
	Workers int
	// Cache enables the incremental generation cache in Target.
	Cache bool
}

// defaults fills in unset values.
func (c *Config) defaults() {
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// Validate reports a ConfigError for a configuration that cannot be used to
// write files.
func (c *Config) Validate() error {
	if c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if _, err := DialectByName(c.Dialect); err != nil {
		return err
	}
	return nil
}
