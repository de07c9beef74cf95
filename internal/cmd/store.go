package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/astrogilda/mcp-credhook/internal/iocontext"
	"github.com/astrogilda/mcp-credhook/internal/secrets"
)

func newStoreCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "store <service> <account>",
		Short: "Store a secret in the OS secret store",
		Long: `Stores a secret under the given (service, account) pair in the system
keyring, where the inject hook will find it.

The secret is prompted for with hidden input when run interactively, or read
as a single line from stdin otherwise:

  echo -n "$TOKEN" | mcp-credhook store github api-key --label "GitHub API Token"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, account := args[0], args[1]
			streams := iocontext.From(cmd.Context())

			secret, err := readSecret(streams)
			if err != nil {
				return err
			}
			if secret == "" {
				return fmt.Errorf("secret cannot be empty")
			}

			store, err := secrets.Open()
			if err != nil {
				return err
			}

			if label == "" {
				label = service + " credential"
			}
			if err := store.Set(service, account, label, secret); err != nil {
				return err
			}

			uiFromContext(cmd.Context()).Success("Stored secret for %s/%s", service, account)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Human-readable label shown by keychain UIs")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <service> <account>",
		Short: "Delete a secret from the OS secret store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, account := args[0], args[1]

			store, err := secrets.Open()
			if err != nil {
				return err
			}

			u := uiFromContext(cmd.Context())
			err = store.Delete(service, account)
			if err == secrets.ErrNotFound {
				u.Info("No secret stored for %s/%s", service, account)
				return nil
			}
			if err != nil {
				return err
			}

			u.Success("Deleted secret for %s/%s", service, account)
			return nil
		},
	}
}

// readSecret reads the secret value: hidden terminal input when stdin is a
// TTY, otherwise the first line of piped stdin.
func readSecret(streams iocontext.IO) (string, error) {
	if f, ok := streams.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(streams.Stderr, "Secret: ")
		secretBytes, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(streams.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(secretBytes)), nil
	}

	scanner := bufio.NewScanner(streams.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
