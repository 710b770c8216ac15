// Command ftm inspects and applies followthemoney schema definitions: it
// dumps a loaded model, validates entity data against it, exports entities
// as a property graph and generates Go constants for schema names.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ftm "github.com/arp242/followthemoney"
)

// modelPath points at a directory of YAML schema definitions. Empty means
// the embedded default model.
var modelPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "ftm",
		Short: "Work with followthemoney schema definitions and entity data",
	}
	rootCmd.PersistentFlags().StringVar(&modelPath, "path", "", "Directory with schema definitions (default: embedded model)")

	rootCmd.AddCommand(dumpModelCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportGraphCmd)
	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadModel returns the model selected by the --path flag.
func loadModel() (*ftm.Model, error) {
	if modelPath == "" {
		return ftm.Default(), nil
	}
	return ftm.LoadModelPath(modelPath)
}
