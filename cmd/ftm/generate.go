package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arp242/followthemoney/gen"
)

var (
	generatePkg string
	generateOut string
)

func init() {
	generateCmd.Flags().StringVar(&generatePkg, "pkg", "model", "Package name for the generated file")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Output file (default: stdout)")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go constants for the model's schema and property names",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel()
		if err != nil {
			return err
		}
		if generateOut != "" {
			return gen.WriteFile(m, generatePkg, generateOut)
		}
		buf, err := gen.Generate(m, generatePkg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(buf)
		return err
	},
}
