package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/engine"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/report"
)

var (
	lintFormatFlag   bool
	lintVersionsFlag bool
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report every issue found without changing any file",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runEngine(false, lintFormatFlag, lintVersionsFlag)
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
	lintCmd.Flags().BoolVarP(&lintFormatFlag, "format", "f", false,
		"Enable to lint the formatting and order of package.json files")
	lintCmd.Flags().BoolVarP(&lintVersionsFlag, "versions", "v", false,
		"Enable to lint version mismatches")
	rootCmd.AddCommand(lintCmd)
}

// runEngine performs the shared work of the lint and fix commands and prints
// the report.
func runEngine(fix, format, versions bool) (*engine.Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	rc, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	filter, err := compileFilter(filterFlag)
	if err != nil {
		return nil, err
	}

	result, err := engine.Run(engine.Options{
		Cwd:      cwd,
		Source:   sourceFlag,
		Filter:   filter,
		Format:   format,
		Versions: versions,
		Fix:      fix,
	}, rc)
	if err != nil {
		return nil, err
	}

	if jsonFlag {
		output, err := report.RenderJSON(result)
		if err != nil {
			return nil, fmt.Errorf("failed to format JSON output: %w", err)
		}
		fmt.Println(output)
	} else {
		fmt.Print(report.RenderHuman(result, report.Options{NoColor: noColorFlag}))
	}
	return result, nil
}
