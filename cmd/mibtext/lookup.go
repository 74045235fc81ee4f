package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibtext/oidrepo"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup OID",
	Short: "Fetch human-readable metadata for an OID from the remote repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := timeoutContext(cmd.Context(), timeout)
		defer cancel()

		client := newRepoClient(cmd)
		entry, err := client.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		return emit(entry)
	},
}

func init() {
	lookupCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	lookupCmd.Flags().String("repo-url", oidrepo.DefaultBaseURL, "OID repository base URL")
}

func newRepoClient(cmd *cobra.Command) *oidrepo.Client {
	url, _ := cmd.Flags().GetString("repo-url")
	return oidrepo.NewClient(oidrepo.WithBaseURL(url))
}

func timeoutContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
