package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME [file...]",
	Short: "Resolve one object's OID and namespace path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(args[1:])
		if err != nil {
			return err
		}

		// Flatten drives resolution for every object, including the target.
		store.Flatten()

		obj := store.Object(args[0])
		if obj == nil {
			return fmt.Errorf("object %s not found in any loaded module", args[0])
		}
		if !obj.Resolved() {
			return fmt.Errorf("object %s has no resolvable OID parent chain", args[0])
		}
		return emit(map[string]string{
			"name":      obj.Name,
			"module":    obj.ModuleName,
			"oid":       obj.OID,
			"namespace": obj.Namespace,
			"syntax":    obj.Syntax,
		})
	},
}
