// Package cmd wires the mcp-credhook command tree.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/astrogilda/mcp-credhook/internal/config"
	"github.com/astrogilda/mcp-credhook/internal/iocontext"
	"github.com/astrogilda/mcp-credhook/internal/logging"
	"github.com/astrogilda/mcp-credhook/internal/session"
	"github.com/astrogilda/mcp-credhook/internal/ui"
)

type ctxKey int

const (
	pathsKey ctxKey = iota
	uiKey
)

func pathsFromContext(ctx context.Context) session.Paths {
	paths, _ := ctx.Value(pathsKey).(session.Paths)
	return paths
}

func uiFromContext(ctx context.Context) *ui.UI {
	if u, ok := ctx.Value(uiKey).(*ui.UI); ok {
		return u
	}
	return ui.New(os.Stderr, ui.ColorAuto)
}

func newRootCmd(app *App) *cobra.Command {
	var (
		debugMode   bool
		logJSON     bool
		credentials string
		targets     string
		configPath  string
		colorFlag   string
	)

	rootCmd := &cobra.Command{
		Use:   "mcp-credhook",
		Short: "Session hooks that move MCP credentials between the OS keyring and config",
		Long: `mcp-credhook brackets an interactive session with credential hooks.

At session start the inject hook copies API credentials from the OS secret
store (keychain/keyring/credential manager) into the env sections of the
shared target configuration. At session end the remove hook strips them out
again, so secrets are on disk only while a session is running.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Error and usage output is handled centrally in App.Execute.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			logging.Setup(debugMode, logJSON, app.Stderr)

			cfg, err := loadSettings(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			credPath, targetPath, err := cfg.ResolvePaths(credentials, targets)
			if err != nil {
				return err
			}

			ctx := iocontext.With(cmd.Context(), iocontext.IO{
				Stdin:  app.Stdin,
				Stdout: app.Stdout,
				Stderr: app.Stderr,
			})
			ctx = context.WithValue(ctx, pathsKey, session.Paths{
				Credentials: credPath,
				Targets:     targetPath,
			})
			mode := resolveColor(cmd.Flags(), colorFlag, cfg)
			ctx = context.WithValue(ctx, uiKey, ui.New(app.Stderr, mode))

			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("mcp-credhook %s (commit: %s, built: %s)\n",
		app.Version, app.Commit, app.BuildTime))

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr")
	flags.BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
	flags.StringVar(&credentials, "credentials", "", "Credential mapping file (default ~/.config/mcp-credhook/credentials.json)")
	flags.StringVar(&targets, "targets", "", "Target configuration file (default ~/.mcp.json)")
	flags.StringVar(&configPath, "config", "", "Settings file (default ~/.config/mcp-credhook/config.yaml)")
	flags.StringVar(&colorFlag, "color", "auto", "Color mode: auto|always|never")

	rootCmd.AddCommand(newInjectCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newStoreCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

func loadSettings(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// resolveColor applies flag > settings > auto precedence for the color mode.
func resolveColor(flags *pflag.FlagSet, flagValue string, cfg *config.Config) ui.ColorMode {
	if !flags.Changed("color") && cfg.Color != "" {
		return ui.ParseColorMode(cfg.Color)
	}
	return ui.ParseColorMode(flagValue)
}
