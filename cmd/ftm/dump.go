package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var dumpModelCmd = &cobra.Command{
	Use:   "dump-model",
	Short: "Print the loaded model as JSON",
	Long:  "Print the sparse serialized form of every schema in the model, keyed by schema name.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m.Specs())
	},
}
