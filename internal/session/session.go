// Package session implements the inject and remove pipelines that bracket an
// interactive session: secrets are copied from the OS secret store into the
// target configuration at session start and stripped out again at session end.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/astrogilda/mcp-credhook/internal/credspec"
	"github.com/astrogilda/mcp-credhook/internal/hook"
	"github.com/astrogilda/mcp-credhook/internal/secrets"
	"github.com/astrogilda/mcp-credhook/internal/targetcfg"
)

// Paths locates the two configuration files a run operates on.
// They are explicit parameters rather than globals so tests can point a
// runner at temp files.
type Paths struct {
	// Credentials is the credential mapping file (credspec format).
	Credentials string
	// Targets is the externally-owned target configuration file.
	Targets string
}

// Runner executes a single inject or remove pass. Single-shot: one Runner
// per hook invocation, no state survives between runs.
type Runner struct {
	Store secrets.Store
	Paths Paths

	// saveDoc persists the target document. Overridable in tests to
	// exercise save-failure handling.
	saveDoc func(doc *targetcfg.Document, path string) error
}

// NewRunner builds a runner for one hook invocation.
// Store may be nil for Remove, which never reads secrets.
func NewRunner(store secrets.Store, paths Paths) *Runner {
	return &Runner{
		Store:   store,
		Paths:   paths,
		saveDoc: (*targetcfg.Document).Save,
	}
}

// Inject resolves each configured credential from the secret store and writes
// it into the target configuration. It returns the hook response and whether
// a response should be emitted at all: with no credentials configured the
// pipeline stays completely silent.
func (r *Runner) Inject() (hook.Response, bool) {
	specs, err := credspec.Load(r.Paths.Credentials)
	if err != nil {
		// Malformed credentials file: warn and stop, there is nothing
		// safe to inject.
		return hook.Response{
			SystemMessage: fmt.Sprintf("WARNING: Failed to load %s: %v", r.Paths.Credentials, loadCause(err)),
		}, true
	}

	if len(specs) == 0 {
		slog.Debug("no credentials configured, nothing to inject")
		return hook.Response{}, false
	}

	doc, err := targetcfg.Load(r.Paths.Targets)
	if err != nil {
		return hook.Response{
			SystemMessage: fmt.Sprintf("WARNING: Failed to load %s: %v", r.Paths.Targets, loadCause(err)),
		}, true
	}
	if doc == nil || !doc.HasTargets() {
		return hook.Response{
			SystemMessage: fmt.Sprintf("WARNING: No target servers configured in %s", r.Paths.Targets),
		}, true
	}

	var injected, failed []string
	modified := false

	for _, name := range specs.SortedNames() {
		spec := specs[name]
		label := spec.DisplayLabel(name)

		if !spec.Complete() {
			failed = append(failed, label+" (incomplete config)")
			continue
		}

		server := spec.Server(name)
		if !doc.HasTarget(server) {
			failed = append(failed, fmt.Sprintf("%s (target server '%s' not found)", label, server))
			continue
		}

		secret, err := r.Store.Get(spec.SecretService, spec.SecretAccount)
		if err != nil {
			// Backend failure degrades to absence for this one
			// credential; the others proceed.
			if !errors.Is(err, secrets.ErrNotFound) {
				slog.Debug("secret lookup failed", "label", label, "error", err)
			}
			failed = append(failed, label+" (not in keyring)")
			continue
		}

		doc.SetEnv(server, spec.EnvVar, secret)
		injected = append(injected, label)
		modified = true
		slog.Debug("injected credential", "label", label, "server", server, "envVar", spec.EnvVar)
	}

	if modified {
		if err := r.saveDoc(doc, r.Paths.Targets); err != nil {
			slog.Debug("target config save failed", "error", err)
			return hook.Response{
				SystemMessage: fmt.Sprintf("ERROR: Failed to save credentials to %s", r.Paths.Targets),
			}, true
		}
	}

	var parts []string
	if len(injected) > 0 {
		parts = append(parts, "Injected: "+strings.Join(injected, ", "))
	}
	if len(failed) > 0 {
		parts = append(parts, "Failed: "+strings.Join(failed, ", "))
	}
	if len(parts) == 0 {
		return hook.Response{}, false
	}
	return hook.Response{
		SystemMessage: "MCP credentials - " + strings.Join(parts, " | "),
	}, true
}

// Remove deletes every configured credential from the target configuration.
// It always returns an approval response so the hook runner never blocks on
// cleanup; labels are only reported as removed once the save has succeeded.
func (r *Runner) Remove() hook.Response {
	specs, err := credspec.Load(r.Paths.Credentials)
	if err != nil {
		// Nothing trustworthy to remove by; approve and move on.
		specs = credspec.Specs{}
	}

	doc, derr := targetcfg.Load(r.Paths.Targets)
	if len(specs) == 0 || derr != nil || doc == nil || !doc.HasTargets() {
		return hook.Response{Decision: hook.DecisionApprove}
	}

	var removed []string
	modified := false

	for _, name := range specs.SortedNames() {
		spec := specs[name]
		if spec.EnvVar == "" {
			continue
		}
		server := spec.Server(name)
		if doc.RemoveEnv(server, spec.EnvVar) {
			removed = append(removed, spec.DisplayLabel(name))
			modified = true
			slog.Debug("removed credential", "label", spec.DisplayLabel(name), "server", server, "envVar", spec.EnvVar)
		}
	}

	if !modified {
		return hook.Response{
			Decision:      hook.DecisionApprove,
			SystemMessage: "INFO: MCP credentials already clean (no credentials to remove)",
		}
	}

	if err := r.saveDoc(doc, r.Paths.Targets); err != nil {
		slog.Debug("target config save failed", "error", err)
		// The on-disk file still holds the credentials, so nothing was
		// actually removed; do not claim otherwise.
		return hook.Response{
			Decision: hook.DecisionApprove,
			SystemMessage: fmt.Sprintf(
				"WARNING: MCP credentials cleanup - failed to save %s\n"+
					"  %d credential(s) may still be present in config file\n"+
					"  Manual cleanup may be required",
				r.Paths.Targets, len(removed)),
		}
	}

	return hook.Response{
		Decision: hook.DecisionApprove,
		SystemMessage: fmt.Sprintf("Cleaned up %d MCP credential(s): %s",
			len(removed), strings.Join(removed, ", ")),
	}
}

// loadCause unwraps parse errors down to the underlying cause so messages
// don't repeat the file path already present in the message template.
func loadCause(err error) error {
	var cp *credspec.ParseError
	if errors.As(err, &cp) {
		return cp.Err
	}
	var tp *targetcfg.ParseError
	if errors.As(err, &tp) {
		return tp.Err
	}
	return err
}
