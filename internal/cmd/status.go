package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrogilda/mcp-credhook/internal/credspec"
	"github.com/astrogilda/mcp-credhook/internal/iocontext"
	"github.com/astrogilda/mcp-credhook/internal/secrets"
	"github.com/astrogilda/mcp-credhook/internal/targetcfg"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report credential resolution without modifying anything",
		Long: `Dry-run report: for each configured credential, shows whether the secret
resolves from the secret store and whether its target server exists.
Secret values are never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsFromContext(cmd.Context())
			streams := iocontext.From(cmd.Context())
			u := uiFromContext(cmd.Context())

			for _, problem := range credspec.ValidateFile(paths.Credentials) {
				u.Warning("credentials schema: %s", problem)
			}

			specs, err := credspec.Load(paths.Credentials)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				u.Info("No credentials configured in %s", paths.Credentials)
				return nil
			}

			doc, err := targetcfg.Load(paths.Targets)
			if err != nil {
				return err
			}

			store, err := secrets.Open()
			if err != nil {
				return err
			}

			for _, name := range specs.SortedNames() {
				spec := specs[name]
				label := spec.DisplayLabel(name)
				_, _ = fmt.Fprintf(streams.Stdout, "%-32s %s\n", label, specState(spec, name, doc, store))
			}
			return nil
		},
	}
}

func specState(spec credspec.Spec, name string, doc *targetcfg.Document, store secrets.Store) string {
	if !spec.Complete() {
		return "incomplete config"
	}

	server := spec.Server(name)
	if !doc.HasTarget(server) {
		return fmt.Sprintf("target server '%s' not found", server)
	}

	if _, err := store.Get(spec.SecretService, spec.SecretAccount); err != nil {
		return "secret not in keyring"
	}

	if _, injected := doc.Env(server)[spec.EnvVar]; injected {
		return "ok (currently injected)"
	}
	return "ok"
}
