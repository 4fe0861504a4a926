// prefgen generates PreferenceRoom component classes from a manifest.
//
//	prefgen -manifest preferenceroom.yaml -target . [-dialect go|java] [-cache] [-watch]
//
// A typical use is a go:generate directive next to the manifest:
//
//	//go:generate go run github.com/syssam/preferenceroom/cmd/prefgen -manifest preferenceroom.yaml -target .
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/syssam/preferenceroom/compiler"
	"github.com/syssam/preferenceroom/compiler/gen"
)

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("prefgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	manifest := flags.String("manifest", "", "path to the component manifest (YAML or JSON)")
	target := flags.String("target", "", "output directory of the generated files")
	dialect := flags.String("dialect", gen.DefaultDialect, "target language: "+strings.Join(gen.Dialects(), ", "))
	workers := flags.Int("workers", 0, "number of components generated in parallel (default GOMAXPROCS)")
	header := flags.String("header", gen.DefaultHeader, "header comment of the generated files")
	cache := flags.Bool("cache", false, "skip components whose input did not change since the last run")
	watch := flags.Bool("watch", false, "regenerate whenever the manifest changes")
	verbose := flags.Bool("v", false, "log every generated component")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(*manifest) == "" || strings.TrimSpace(*target) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: prefgen -manifest <file.yaml> -target <dir> [flags]")
		flags.PrintDefaults()
		return 2
	}

	opts := []gen.Option{
		gen.WithTarget(*target),
		gen.WithDialect(*dialect),
		gen.WithHeader(*header),
		gen.WithCache(*cache),
	}
	if *workers != 0 {
		opts = append(opts, gen.WithWorkers(*workers))
	}
	cfg, err := gen.NewConfig(opts...)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *watch {
		if err := compiler.Watch(ctx, *manifest, cfg, compiler.WithLogger(logger)); err != nil {
			logger.Error("watch failed", "error", err)
			return 1
		}
		return 0
	}
	res, err := compiler.Generate(ctx, *manifest, cfg, compiler.WithLogger(logger))
	if err != nil {
		logger.Error("generation failed", "error", err)
		return 1
	}
	for _, f := range res.Written {
		_, _ = fmt.Fprintln(stdout, f)
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
