package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten [file...]",
	Short: "Load MIB files and print the flattened object metadata",
	Long: `Load the bundled base module set plus the given MIB files, resolve
every OID, and print the flattened metadata records. Objects whose
parent chain cannot be resolved are omitted; run with --diagnostics to
see why.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(args)
		if err != nil {
			return err
		}

		flat := store.Flatten()
		if err := emit(flat); err != nil {
			return err
		}

		showDiags, _ := cmd.Flags().GetBool("diagnostics")
		if showDiags {
			for _, d := range store.Diagnostics() {
				fmt.Fprintln(os.Stderr, d)
			}
		}
		return nil
	},
}

func init() {
	flattenCmd.Flags().Bool("diagnostics", false, "print diagnostics to stderr")
}

// emit writes v to stdout in the selected output format.
func emit(v any) error {
	switch flagFormat {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", flagFormat)
	}
}
