package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const exampleCredentials = `{
  "github": {
    "envVar": "GITHUB_TOKEN",
    "secretService": "github",
    "secretAccount": "api-key",
    "label": "GitHub API Token",
    "targetServer": "github-mcp"
  }
}
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example credential mapping file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathsFromContext(cmd.Context()).Credentials

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(exampleCredentials), 0o600); err != nil {
				return err
			}

			u := uiFromContext(cmd.Context())
			u.Success("Wrote example credential mapping to %s", path)
			u.Info("Store the matching secret with: mcp-credhook store github api-key")
			return nil
		},
	}
}
