package compiler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/preferenceroom/compiler/gen"
	"github.com/syssam/preferenceroom/compiler/load"
)

// CacheFile is the name of the incremental generation cache in the target
// directory.
const CacheFile = ".preferenceroom.cache"

// cacheVersion is bumped whenever generated output changes for identical
// input.
const cacheVersion = 1

// cacheEntry records the input fingerprint and output file of a component.
type cacheEntry struct {
	Fingerprint string `msgpack:"fingerprint"`
	File        string `msgpack:"file"`
}

type cacheData struct {
	Version int                   `msgpack:"version"`
	Entries map[string]cacheEntry `msgpack:"entries"`
}

// cache maps components to the fingerprint of the input their output file
// was generated from.
type cache struct {
	dir     string
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// loadCache reads the cache of dir. A missing cache is empty; an
// unreadable or outdated one is reported and replaced by an empty cache.
func loadCache(dir string) (*cache, error) {
	c := &cache{dir: dir, entries: make(map[string]cacheEntry)}
	data, err := os.ReadFile(filepath.Join(dir, CacheFile))
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read cache: %w", err)
	}
	var d cacheData
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return c, fmt.Errorf("decode cache: %w", err)
	}
	if d.Version != cacheVersion {
		return c, nil
	}
	for k, e := range d.Entries {
		c.entries[k] = e
	}
	return c, nil
}

// componentKey identifies a component across runs.
func componentKey(c *load.Component) string {
	return c.Package + "." + c.Name
}

// mark fingerprints every task and marks those whose output is up to date.
func (c *cache) mark(tasks []*task, entities load.Registry, cfg *gen.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tasks {
		fp, err := fingerprint(t.component, entities, cfg)
		if err != nil {
			return fmt.Errorf("component %s: %w", t.component.Name, err)
		}
		t.fingerprint = fp
		e, ok := c.entries[componentKey(t.component)]
		t.skipped = ok && e.Fingerprint == fp && e.File == t.file &&
			fileExists(filepath.Join(c.dir, filepath.FromSlash(t.file)))
	}
	return nil
}

// update records the fingerprints of the tasks. Entries of components no
// longer in the manifest are dropped.
func (c *cache) update(tasks []*task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry, len(tasks))
	for _, t := range tasks {
		c.entries[componentKey(t.component)] = cacheEntry{Fingerprint: t.fingerprint, File: t.file}
	}
}

func (c *cache) save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&cacheData{Version: cacheVersion, Entries: c.entries}); err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, CacheFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// fingerprintInput is everything the output of a component depends on.
// Entities follow the component key order; the encoding holds no maps.
type fingerprintInput struct {
	Component *load.Component     `msgpack:"component"`
	Entities  []fingerprintEntity `msgpack:"entities"`
	Dialect   string              `msgpack:"dialect"`
	Header    string              `msgpack:"header"`
	Version   int                 `msgpack:"version"`
}

// fingerprintEntity is a referenced entity under its key. Entity is nil
// for keys missing from the registry.
type fingerprintEntity struct {
	Key    string       `msgpack:"key"`
	Entity *load.Entity `msgpack:"entity"`
}

// fingerprint returns the sha256 of the msgpack encoding of the component,
// the entities it references and the output settings.
func fingerprint(c *load.Component, entities load.Registry, cfg *gen.Config) (string, error) {
	refs := make([]fingerprintEntity, 0, len(c.Keys))
	for _, k := range c.Keys {
		e, _ := entities.Lookup(k)
		refs = append(refs, fingerprintEntity{Key: k, Entity: e})
	}
	var buf bytes.Buffer
	err := msgpack.NewEncoder(&buf).Encode(&fingerprintInput{
		Component: c,
		Entities:  refs,
		Dialect:   cfg.Dialect,
		Header:    cfg.Header,
		Version:   cacheVersion,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
