package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	fixFormatFlag   bool
	fixVersionsFlag bool
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Rewrite manifests to their expected specifiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runEngine(true, fixFormatFlag, fixVersionsFlag)
		if err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	fixCmd.Flags().BoolVarP(&fixFormatFlag, "format", "f", false,
		"Enable to fix the formatting and order of package.json files")
	fixCmd.Flags().BoolVarP(&fixVersionsFlag, "versions", "v", false,
		"Enable to fix version mismatches")
	rootCmd.AddCommand(fixCmd)
}
