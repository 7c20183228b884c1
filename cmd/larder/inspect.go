// Inspect command: dump store metadata and table summaries.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/htmldoc"
	"github.com/mesh-intelligence/larder/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump store metadata and table summaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := store.Metadata()
		if err != nil {
			return err
		}
		infos, err := store.Tables()
		if err != nil {
			return err
		}
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Metadata types.Metadata      `json:"metadata"`
				Tables   []htmldoc.TableInfo `json:"tables"`
			}{md, infos})
		}
		fmt.Println("Metadata:")
		for _, key := range md.Keys() {
			fmt.Printf("  %s: %v\n", key, md[key])
		}
		fmt.Println("Tables:")
		for _, ti := range infos {
			fmt.Printf("  %s (%d rows): %s\n", ti.Name, ti.Rows, strings.Join(ti.Columns, ","))
		}
		return nil
	},
}
