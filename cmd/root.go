package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "easypromo",
	Short: "Promotion aggregation service CLI",
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("EasyPromo", "slant", true).Print()
		fmt.Println()
		cmd.Help()
	},
}

// Execute runs the root command, applying registered extension commands first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
