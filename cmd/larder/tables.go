// Tables command: list the document's tables with row counts.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in the store document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := store.Tables()
		if err != nil {
			return err
		}
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tROWS\tCOLUMNS")
		for _, ti := range infos {
			fmt.Fprintf(w, "%s\t%d\t%s\n", ti.Name, ti.Rows, strings.Join(ti.Columns, ","))
		}
		return w.Flush()
	},
}
