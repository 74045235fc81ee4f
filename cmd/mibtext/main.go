// Command mibtext loads MIB files, resolves OIDs, and dumps the
// flattened object metadata used by manifest-authoring tooling.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibtext"
)

var (
	version = "dev"

	flagBaseDir string
	flagFormat  string
	flagVerbose int
)

var rootCmd = &cobra.Command{
	Use:   "mibtext",
	Short: "MIB parser, OID resolver, and metadata flattener",
	Long: `mibtext compiles MIB module text, resolves OBJECT IDENTIFIER chains
into dotted OID paths, and exposes the combined object metadata as a
flat list. The bundled standard base modules are always loaded first;
additional .mib files are compiled on top of them.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "directory searched for base module files before the embedded copies")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "json", "output format (json, yaml)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase logging (-v debug, -vv trace)")

	rootCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(lookupCmd)
}

// logger maps the verbosity count to a slog logger, or nil when quiet.
func logger() *slog.Logger {
	if flagVerbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if flagVerbose > 1 {
		level = mibtext.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newStore builds a store with the common flags applied and loads the
// given MIB files on top of the base set.
func newStore(files []string) (*mibtext.Store, error) {
	store, err := mibtext.New(
		mibtext.WithLogger(logger()),
		mibtext.WithBaseDir(flagBaseDir),
	)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := store.LoadFile(f); err != nil {
			return nil, err
		}
	}
	return store, nil
}
