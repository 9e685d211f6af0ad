package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hammer",
		Short: "Parse messy US postal addresses into labeled fields",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newBatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
