package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/astrogilda/mcp-credhook/internal/hook"
	"github.com/astrogilda/mcp-credhook/internal/iocontext"
	"github.com/astrogilda/mcp-credhook/internal/secrets"
	"github.com/astrogilda/mcp-credhook/internal/session"
)

func newInjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inject",
		Short: "Session-start hook: inject credentials into the target config",
		Long: `Reads the hook payload from stdin, resolves each configured credential
from the OS secret store, and writes it into the env section of its target
server in the target configuration file.

Intended to be invoked by the hook runner at session start; the outcome is
reported as a single JSON line on stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			streams := iocontext.From(cmd.Context())

			// The hook runner's payload must be drained even though its
			// contents are unused, or the runner sees a broken pipe.
			payload := hook.Consume(streams.Stdin)
			slog.Debug("inject hook invoked", "session", payload.SessionID, "event", payload.HookEventName)

			store, err := secrets.Open()
			if err != nil {
				_ = hook.Emit(streams.Stdout, hook.Response{
					SystemMessage: fmt.Sprintf("ERROR: secret store unavailable: %v", err),
				})
				return &fatalResponseError{err: err}
			}

			runner := session.NewRunner(store, pathsFromContext(cmd.Context()))
			resp, emit := runner.Inject()
			if !emit {
				return nil
			}
			return hook.Emit(streams.Stdout, resp)
		},
	}
}
