package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mycelian/casefiles/client"
)

const tokenEnv = "CASEFILES_TOKEN"

var (
	apiFlag     string
	tokenFlag   string
	timeoutFlag time.Duration
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "casefilesctl",
		Short:         "CLI client for the case files service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Case files service base URL")
	root.PersistentFlags().StringVarP(&tokenFlag, "token", "t", os.Getenv(tokenEnv), "Session token (defaults to $"+tokenEnv+")")
	root.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 90*time.Second, "Overall request timeout")

	root.AddCommand(newLoginCmd(), newLogoutCmd(), newWhoamiCmd(), newRecordsCmd(), newDashboardCmd(), newSummaryCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds an SDK client from the persistent flags.
func newClient() (*client.Client, error) {
	opts := []client.Option{client.WithHTTPTimeout(timeoutFlag)}
	if tokenFlag != "" {
		opts = append(opts, client.WithToken(tokenFlag))
	}
	return client.New(apiFlag, opts...)
}

// requireToken fails early when a command needs a session.
func requireToken() error {
	if tokenFlag == "" {
		return fmt.Errorf("no session: run `casefilesctl login` and export %s, or pass --token", tokenEnv)
	}
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeoutFlag)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
