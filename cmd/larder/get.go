// Get command: print one row's cells by reference identifier.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Print the row with the given reference identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cells, err := store.RowCells(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cells)
		}
		cols := make([]string, 0, len(cells))
		for col := range cells {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Printf("%s: %s\n", col, cells[col])
		}
		return nil
	},
}
