package frontend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"instancing-viewer/internal/config"
	"instancing-viewer/internal/host"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

var ErrUndeclared = errors.New("option not declared by the core")

// Options is the host side of the core's variables: the declared schema,
// the current values and a flag the core polls for changes. Values are
// persisted to a TOML file of key = "value" pairs when a path is set.
type Options struct {
	path string

	mu     sync.Mutex
	vars   []host.Variable
	values map[string]string

	updated atomic.Bool
}

// NewOptions returns an empty store backed by the file at path. An empty
// path keeps values in memory only.
func NewOptions(path string) *Options {
	return &Options{path: path, values: make(map[string]string)}
}

// SetVariables records the schema and gives every variable its default,
// the first listed value, unless the options file sets it.
func (o *Options) SetVariables(vars []host.Variable) bool {
	o.mu.Lock()
	o.vars = slices.Clone(vars)
	for _, v := range vars {
		if _, ok := o.values[v.Key]; ok {
			continue
		}
		if choices := config.Choices(v); len(choices) > 0 {
			o.values[v.Key] = choices[0]
		}
	}
	o.mu.Unlock()

	if err := o.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("couldn't read options: %v", err)
	}
	o.updated.Store(true)
	return true
}

func (o *Options) GetVariable(key string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.values[key]
	return v, ok
}

// VariableUpdate reports whether a value changed since the last call.
func (o *Options) VariableUpdate() bool {
	return o.updated.Swap(false)
}

// Set changes one value. Values are not validated here; the core rejects
// what it does not understand.
func (o *Options) Set(key, value string) error {
	o.mu.Lock()
	if o.variable(key) == nil {
		o.mu.Unlock()
		return fmt.Errorf("%s: %w", key, ErrUndeclared)
	}
	o.values[key] = value
	o.mu.Unlock()

	o.updated.Store(true)
	return o.Save()
}

// Cycle advances key to the next declared choice, wrapping around.
func (o *Options) Cycle(key string) (string, error) {
	o.mu.Lock()
	v := o.variable(key)
	if v == nil {
		o.mu.Unlock()
		return "", fmt.Errorf("%s: %w", key, ErrUndeclared)
	}
	choices := config.Choices(*v)
	if len(choices) == 0 {
		o.mu.Unlock()
		return "", fmt.Errorf("%s has no choices", key)
	}
	next :=choices[(slices.Index(choices, o.values[key])+1)%len(choices)]
	o.mu.Unlock()

	return next, o.Set(key, next)
}

func (o *Options) variable(key string) *host.Variable {
	for i := range o.vars {
		if o.vars[i].Key == key {
			return &o.vars[i]
		}
	}
	return nil
}

// Load merges the options file into the current values. Keys the core
// did not declare are ignored.
func (o *Options) Load() error {
	if o.path == "" {
		return nil
	}
	data, err := os.ReadFile(o.path)
	if err != nil {
		return err
	}
	file := map[string]string{}
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%s: %w", o.path, err)
	}

	o.mu.Lock()
	changed := false
	for k, v := range file {
		if o.variable(k) == nil {
			log.Printf("%s: unknown option %q", o.path, k)
			continue
		}
		if o.values[k] != v {
			o.values[k] = v
			changed = true
		}
	}
	o.mu.Unlock()

	if changed {
		o.updated.Store(true)
	}
	return nil
}

// Save writes the current values to the options file.
func (o *Options) Save() error {
	if o.path == "" {
		return nil
	}
	o.mu.Lock()
	data, err := toml.Marshal(o.values)
	o.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(o.path, data, 0o644)
}

// Watch reloads the options file whenever it is written, until ctx is done.
// The directory is watched so editors that replace the file are seen too.
func (o *Options) Watch(ctx context.Context) error {
	if o.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(o.path)); err != nil {
		watcher.Close()
		return err
	}

	name := filepath.Clean(o.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := o.Load(); err != nil {
					log.Printf("couldn't reload options: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("options watcher:", err)
			}
		}
	}()
	return nil
}
