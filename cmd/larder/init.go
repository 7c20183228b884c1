// Init command: create an empty store document with identifying metadata.
package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty store document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.SetMetadata("generator", "larder "+version); err != nil {
			return err
		}
		if err := store.SetMetadata("store_id", uuid.Must(uuid.NewV7()).String()); err != nil {
			return err
		}
		if err := store.Commit(); err != nil {
			return fmt.Errorf("write store: %w", err)
		}
		fmt.Println("Store initialized")
		return nil
	},
}
