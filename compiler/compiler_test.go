package compiler

import (
	"context"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/preferenceroom/compiler/gen"
	"github.com/syssam/preferenceroom/compiler/load"
)

const manifestYAML = `entities:
  user: {name: User, package: example.com/app/prefs}
  app: {name: App, package: example.com/app/prefs}
  device: {name: Device, package: example.com/app/device}
components:
  - name: Manager
    package: example.com/app/prefs
    entities: [user, app]
  - name: Settings
    package: example.com/app/prefs
    entities: [device]
    methods:
      - name: Sync
        params: [{name: r, type: "*example.com/app/model.Request"}]
`

var discard = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "preferenceroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerate_Go(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out")
	path := writeManifest(t, dir, manifestYAML)

	res, err := Generate(context.Background(), path, gen.MustNewConfig(gen.WithTarget(target), gen.WithWorkers(2)), discard)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"prefs/preferencecomponent_manager.go",
		"prefs/preferencecomponent_settings.go",
	}, res.Written)
	assert.Empty(t, res.Skipped)

	for _, f := range res.Written {
		src, err := os.ReadFile(filepath.Join(target, f))
		require.NoError(t, err)
		_, err = parser.ParseFile(token.NewFileSet(), f, src, 0)
		require.NoError(t, err, string(src))
	}
	src, err := os.ReadFile(filepath.Join(target, "prefs", "preferencecomponent_settings.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "preferenceroom.Inject(r)")
	assert.NoFileExists(t, filepath.Join(target, CacheFile))
}

func TestGenerate_Java(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `entities:
  user: {name: User, package: com.x}
components:
  - name: Manager
    package: com.x
    entities: [user]
`)
	cfg := gen.MustNewConfig(gen.WithTarget(dir), gen.WithDialect("java"))
	res, err := Generate(context.Background(), path, cfg, discard)
	require.NoError(t, err)
	require.Equal(t, []string{"com/x/PreferenceComponent_Manager.java"}, res.Written)

	src, err := os.ReadFile(filepath.Join(dir, "com", "x", "PreferenceComponent_Manager.java"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "public class PreferenceComponent_Manager implements Manager {")
}

func TestGenerate_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out")
	path := writeManifest(t, dir, `entities:
  user: {name: User, package: example.com/app/prefs}
components:
  - name: Manager
    package: example.com/app/prefs
    entities: [user]
  - name: Broken
    package: example.com/app/prefs
    entities: [user]
    methods:
      - name: Sync
        returns: int
        params: [{name: r, type: Request}]
`)
	res, err := Generate(context.Background(), path, gen.MustNewConfig(gen.WithTarget(target)), discard)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, gen.IsValidationError(err))
	assert.Contains(t, err.Error(), "component Broken")
	assert.Contains(t, err.Error(), "'int'")
	assert.NoDirExists(t, target)
}

func TestGenerate_MissingManifest(t *testing.T) {
	_, err := Generate(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"),
		gen.MustNewConfig(gen.WithTarget(t.TempDir())), discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateManifest_Config(t *testing.T) {
	m := &load.Manifest{}
	t.Run("nil config", func(t *testing.T) {
		_, err := GenerateManifest(context.Background(), m, nil, discard)
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	})
	t.Run("missing target", func(t *testing.T) {
		_, err := GenerateManifest(context.Background(), m, gen.MustNewConfig(), discard)
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	})
	t.Run("unknown dialect", func(t *testing.T) {
		cfg := gen.MustNewConfig(gen.WithTarget(t.TempDir()), gen.WithDialect("kotlin"))
		_, err := GenerateManifest(context.Background(), m, cfg, discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "go java")
	})
}

func TestGenerateManifest_FileConflict(t *testing.T) {
	m := &load.Manifest{
		Entities: load.Registry{"user": {Name: "User", Package: "example.com/a/prefs"}},
		Components: []*load.Component{
			{Name: "Manager", Package: "example.com/a/prefs", Keys: []string{"user"}},
			{Name: "Manager", Package: "example.com/b/prefs", Keys: []string{"user"}},
		},
	}
	_, err := GenerateManifest(context.Background(), m, gen.MustNewConfig(gen.WithTarget(t.TempDir())), discard)
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
	assert.Contains(t, err.Error(), "prefs/preferencecomponent_manager.go")
}

func TestGenerateManifest_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &load.Manifest{
		Entities:   load.Registry{"user": {Name: "User", Package: "example.com/prefs"}},
		Components: []*load.Component{{Name: "Manager", Package: "example.com/prefs", Keys: []string{"user"}}},
	}
	_, err := GenerateManifest(ctx, m, gen.MustNewConfig(gen.WithTarget(t.TempDir())), discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_Cache(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out")
	path := writeManifest(t, dir, manifestYAML)
	cfg := gen.MustNewConfig(gen.WithTarget(target), gen.WithCache(true))

	res, err := Generate(context.Background(), path, cfg, discard)
	require.NoError(t, err)
	assert.Len(t, res.Written, 2)
	assert.FileExists(t, filepath.Join(target, CacheFile))

	t.Run("unchanged components are skipped", func(t *testing.T) {
		res, err := Generate(context.Background(), path, cfg, discard)
		require.NoError(t, err)
		assert.Empty(t, res.Written)
		assert.Len(t, res.Skipped, 2)
	})

	t.Run("deleted output is regenerated", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(target, "prefs", "preferencecomponent_manager.go")))
		res, err := Generate(context.Background(), path, cfg, discard)
		require.NoError(t, err)
		assert.Equal(t, []string{"prefs/preferencecomponent_manager.go"}, res.Written)
		assert.Equal(t, []string{"prefs/preferencecomponent_settings.go"}, res.Skipped)
	})

	t.Run("changed component is regenerated", func(t *testing.T) {
		writeManifest(t, dir, strings.Replace(manifestYAML, "entities: [user, app]", "entities: [app, user]", 1))
		res, err := Generate(context.Background(), path, cfg, discard)
		require.NoError(t, err)
		assert.Equal(t, []string{"prefs/preferencecomponent_manager.go"}, res.Written)
		assert.Equal(t, []string{"prefs/preferencecomponent_settings.go"}, res.Skipped)
	})

	t.Run("changed header invalidates all", func(t *testing.T) {
		cfg := gen.MustNewConfig(gen.WithTarget(target), gen.WithCache(true), gen.WithHeader("Custom header."))
		res, err := Generate(context.Background(), path, cfg, discard)
		require.NoError(t, err)
		assert.Len(t, res.Written, 2)
	})
}
