package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/astrogilda/mcp-credhook/internal/hook"
	"github.com/astrogilda/mcp-credhook/internal/iocontext"
	"github.com/astrogilda/mcp-credhook/internal/session"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Session-end hook: strip injected credentials from the target config",
		Long: `Reads the hook payload from stdin and deletes every configured credential
from the env sections of the target configuration file, removing env maps
that become empty.

Always emits an approval response so session shutdown is never blocked by
cleanup problems.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			streams := iocontext.From(cmd.Context())

			payload := hook.Consume(streams.Stdin)
			slog.Debug("remove hook invoked", "session", payload.SessionID, "event", payload.HookEventName)

			runner := session.NewRunner(nil, pathsFromContext(cmd.Context()))
			return hook.Emit(streams.Stdout, runner.Remove())
		},
	}
}
