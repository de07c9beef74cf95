// Package targetcfg reads and writes the shared target configuration document.
//
// The document is externally owned: this package only ever touches keys under
// targets[<server>].env[<envVar>] and must preserve everything else across a
// load/save round trip. It is therefore modeled as a generic JSON object
// rather than a typed struct, so unknown keys survive untouched.
package targetcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// targetsKey is the top-level mapping from server name to server record.
const targetsKey = "targets"

// Document is a loaded target configuration file.
type Document struct {
	root map[string]any
}

// ParseError indicates the target config file exists but is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse target config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the document from path.
// A missing file returns (nil, nil): absence is a normal no-op case for the
// session pipelines, not an error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &Document{root: root}, nil
}

// New creates an empty document. Used by tests; the pipelines never create
// the externally-owned file themselves.
func New() *Document {
	return &Document{root: map[string]any{}}
}

// targets returns the targets mapping, or nil if absent or mistyped.
func (d *Document) targets() map[string]any {
	m, _ := d.root[targetsKey].(map[string]any)
	return m
}

// target returns the record for the named server, or nil.
func (d *Document) target(server string) map[string]any {
	rec, _ := d.targets()[server].(map[string]any)
	return rec
}

// HasTargets reports whether the document carries a targets section at all.
func (d *Document) HasTargets() bool {
	return d != nil && d.targets() != nil
}

// HasTarget reports whether the named server exists under targets.
func (d *Document) HasTarget(server string) bool {
	if d == nil {
		return false
	}
	_, ok := d.targets()[server]
	return ok
}

// Env returns a copy of the env map for the named server.
// Non-string values are skipped; they are outside this tool's contract.
func (d *Document) Env(server string) map[string]string {
	rec := d.target(server)
	if rec == nil {
		return nil
	}
	env, ok := rec["env"].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// SetEnv sets targets[server].env[key] = value, creating the env map if
// absent. Returns false if the server does not exist; the server record is
// never created by injection.
func (d *Document) SetEnv(server, key, value string) bool {
	rec := d.target(server)
	if rec == nil {
		return false
	}
	env, ok := rec["env"].(map[string]any)
	if !ok {
		env = map[string]any{}
		rec["env"] = env
	}
	env[key] = value
	return true
}

// RemoveEnv deletes targets[server].env[key] if present, removing the env
// map entirely when it becomes empty. Returns true if a key was deleted.
func (d *Document) RemoveEnv(server, key string) bool {
	rec := d.target(server)
	if rec == nil {
		return false
	}
	env, ok := rec["env"].(map[string]any)
	if !ok {
		return false
	}
	if _, ok := env[key]; !ok {
		return false
	}
	delete(env, key)
	if len(env) == 0 {
		delete(rec, "env")
	}
	return true
}

// Save writes the document to path with stable 2-space indentation.
// The write goes through a temp file in the same directory followed by a
// rename, so a failure never leaves a truncated config behind.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode target config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmpName)
		if werr != nil {
			return fmt.Errorf("failed to write target config: %w", werr)
		}
		return fmt.Errorf("failed to write target config: %w", cerr)
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set target config mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace target config: %w", err)
	}
	return nil
}
