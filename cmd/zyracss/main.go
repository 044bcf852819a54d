package main

import (
	"os"

	"github.com/spf13/cobra"

	"zyracss/zyra"
)

func main() {
	root := &cobra.Command{
		Use:           "zyracss",
		Short:         "ZyraCSS bracket-notation utility CSS generator",
		Version:       zyra.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newExtractCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
