// Package credspec loads the credential specification mapping.
//
// The mapping is a JSON object keyed by logical service name:
//
//	{
//	  "github": {
//	    "envVar": "GITHUB_TOKEN",
//	    "secretService": "github",
//	    "secretAccount": "api-key",
//	    "label": "GitHub API Token",
//	    "targetServer": "github-mcp"
//	  }
//	}
//
// label defaults to the entry name, targetServer defaults to the entry name.
// A missing file is an empty mapping, not an error.
package credspec

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Spec describes one credential: where to find the secret and where to
// inject it.
type Spec struct {
	EnvVar        string `json:"envVar"`
	SecretService string `json:"secretService"`
	SecretAccount string `json:"secretAccount"`
	Label         string `json:"label,omitempty"`
	TargetServer  string `json:"targetServer,omitempty"`
}

// Complete reports whether all required fields are present.
func (s Spec) Complete() bool {
	return s.EnvVar != "" && s.SecretService != "" && s.SecretAccount != ""
}

// DisplayLabel returns the label, falling back to the entry name.
func (s Spec) DisplayLabel(name string) string {
	if s.Label != "" {
		return s.Label
	}
	return name
}

// Server returns the target server, falling back to the entry name.
func (s Spec) Server(name string) string {
	if s.TargetServer != "" {
		return s.TargetServer
	}
	return name
}

// Specs is the credential mapping keyed by logical service name.
type Specs map[string]Spec

// SortedNames returns the entry names in sorted order for deterministic
// processing and summary output.
func (s Specs) SortedNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseError indicates the credentials file exists but is not valid JSON.
// Callers are expected to warn and continue with an empty mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse credentials file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the credential mapping from path.
// A missing file yields an empty mapping. A file that is not a JSON object
// yields a *ParseError. Entries whose bodies are not valid Spec objects are
// kept as zero-value Specs so callers can report them as incomplete rather
// than dropping them silently.
func Load(path string) (Specs, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Specs{}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	specs := make(Specs, len(raw))
	for name, body := range raw {
		var spec Spec
		if err := json.Unmarshal(body, &spec); err != nil {
			// Entry-level damage: keep the name so it surfaces as
			// an incomplete-config failure, not a silent drop.
			specs[name] = Spec{}
			continue
		}
		specs[name] = spec
	}
	return specs, nil
}
