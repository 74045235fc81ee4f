package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibtext/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Dump the token rows produced for a MIB file (debugging aid)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		l := lexer.New(filepath.Base(args[0]), logger())
		for _, row := range l.Tokenize(string(text)) {
			fmt.Printf("%5d  %q\n", row.Line, row.Tokens)
		}
		for _, d := range l.Diagnostics() {
			fmt.Fprintln(os.Stderr, d)
		}
		return nil
	},
}
