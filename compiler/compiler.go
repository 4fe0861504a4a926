// Package compiler runs the generation pipeline: it loads a manifest,
// generates the class of every component, renders it with the configured
// dialect and writes it below the target directory.
//
//	res, err := compiler.Generate(ctx, "preferenceroom.yaml", gen.MustNewConfig(
//		gen.WithTarget("."),
//		gen.WithDialect("go"),
//	))
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/preferenceroom/compiler/gen"
	_ "github.com/syssam/preferenceroom/compiler/gen/golang"
	_ "github.com/syssam/preferenceroom/compiler/gen/java"
	"github.com/syssam/preferenceroom/compiler/load"
)

// Result reports the files of a run, relative to the target directory, in
// component order.
type Result struct {
	Written []string
	Skipped []string
}

// Option configures a pipeline run.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	debounce time.Duration
	notify   func(*Result, error)
}

// WithLogger sets the logger of the run. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDebounce sets how long Watch waits for the manifest to settle before
// regenerating.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithNotify registers a function Watch calls after every regeneration.
func WithNotify(fn func(*Result, error)) Option {
	return func(o *options) {
		o.notify = fn
	}
}

func newOptions(opts []Option) *options {
	o := &options{debounce: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Generate loads the manifest at path and generates all of its components.
func Generate(ctx context.Context, path string, cfg *gen.Config, opts ...Option) (*Result, error) {
	m, err := load.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return GenerateManifest(ctx, m, cfg, opts...)
}

// task is the generation state of one component.
type task struct {
	component   *load.Component
	class       *gen.Class
	file        string
	fingerprint string
	skipped     bool
}

// GenerateManifest generates all components of m. Components are generated
// in parallel, bounded by cfg.Workers; the first failure cancels the run.
// Nothing is written if any component fails validation.
func GenerateManifest(ctx context.Context, m *load.Manifest, cfg *gen.Config, opts ...Option) (*Result, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "missing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dialect, err := gen.DialectByName(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	log := o.logger.With("run", uuid.NewString(), "dialect", cfg.Dialect)
	start := time.Now()

	tasks := make([]*task, len(m.Components))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers(cfg))
	for i, c := range m.Components {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			class, err := gen.Generate(c, m.Entities, dialect.Resolver())
			if err != nil {
				return fmt.Errorf("component %s: %w", c.Name, err)
			}
			tasks[i] = &task{component: c, class: class, file: dialect.FileName(class)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := checkFiles(tasks); err != nil {
		return nil, err
	}

	var c *cache
	if cfg.Cache {
		c, err = loadCache(cfg.Target)
		if err != nil {
			log.Warn("ignoring unreadable cache", "error", err)
		}
		if err := c.mark(tasks, m.Entities, cfg); err != nil {
			return nil, err
		}
	}

	w := gen.NewWriter(cfg.Target)
	eg, gctx = errgroup.WithContext(ctx)
	eg.SetLimit(workers(cfg))
	for _, t := range tasks {
		if t.skipped {
			log.Debug("component unchanged", "component", t.component.Name, "file", t.file)
			continue
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := dialect.Render(t.class, cfg.Header)
			if err != nil {
				return fmt.Errorf("component %s: %w", t.component.Name, err)
			}
			if err := w.Write(t.file, src); err != nil {
				return fmt.Errorf("component %s: %w", t.component.Name, err)
			}
			log.Debug("component generated", "component", t.component.Name, "file", t.file)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, t := range tasks {
		if t.skipped {
			res.Skipped = append(res.Skipped, t.file)
		} else {
			res.Written = append(res.Written, t.file)
		}
	}
	if c != nil {
		c.update(tasks)
		if err := c.save(); err != nil {
			return nil, err
		}
	}
	metrics := w.Metrics()
	log.Info("generation complete",
		"components", len(tasks),
		"written", len(res.Written),
		"skipped", len(res.Skipped),
		"bytes", metrics.TotalBytes,
		"duration", time.Since(start),
	)
	return res, nil
}

func workers(cfg *gen.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return 1
}

// checkFiles fails if two components are written to the same file.
func checkFiles(tasks []*task) error {
	owners := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if prev, ok := owners[t.file]; ok {
			return gen.NewGenerationError("write", t.file,
				fmt.Sprintf("file generated by both components %s and %s", prev, t.component.Name), nil)
		}
		owners[t.file] = t.component.Name
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
