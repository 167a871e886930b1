package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags
	sourceFlag    []string
	filterFlag    string
	logLevelsFlag []string
	noColorFlag   bool
	jsonFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "version-sync",
	Short: "Lint and fix version specifiers across a monorepo",
	Long: `version-sync keeps the version specifiers declared across the package.json
files of a monorepo consistent.

Every dependency declaration is assigned to a semver group (which range
operator it should carry) and a version group (which version it should
carry), then classified as valid, suspect, or invalid. Invalid declarations
are either fixable, a conflict between the two groups, or unfixable.

The lint command reports every classification; the fix command rewrites
manifests to their expected specifiers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateSources(sourceFlag); err != nil {
			return err
		}
		if _, err := compileFilter(filterFlag); err != nil {
			return err
		}
		return configureLogging(logLevelsFlag, noColorFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&sourceFlag, "source", "s", nil,
		"A glob pattern for package.json files to read from (repeatable)")
	rootCmd.PersistentFlags().StringVar(&filterFlag, "filter", "",
		"Only include dependencies whose name matches this regex")
	rootCmd.PersistentFlags().StringSliceVar(&logLevelsFlag, "log-levels", []string{"error", "warn", "info"},
		"Control how detailed log output should be (off,error,warn,info,debug)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false,
		"Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false,
		"Output the report as JSON")
}

// validateSources rejects source patterns which do not select package.json files.
func validateSources(patterns []string) error {
	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "package.json") {
			return fmt.Errorf("--source pattern %q must end with 'package.json'", pattern)
		}
	}
	return nil
}

// compileFilter compiles the --filter regex, an empty filter matches everything.
func compileFilter(filter string) (*regexp.Regexp, error) {
	if filter == "" {
		return nil, nil
	}
	compiled, err := regexp.Compile(filter)
	if err != nil {
		return nil, fmt.Errorf("--filter is not a valid regex: %w", err)
	}
	return compiled, nil
}

// configureLogging applies --log-levels and --no-color to the logger.
func configureLogging(levels []string, noColor bool) error {
	log.SetFormatter(&log.TextFormatter{DisableColors: noColor})
	level := log.PanicLevel
	for _, name := range levels {
		switch name {
		case "off":
			log.SetOutput(io.Discard)
			return nil
		case "error":
			level = maxLevel(level, log.ErrorLevel)
		case "warn":
			level = maxLevel(level, log.WarnLevel)
		case "info":
			level = maxLevel(level, log.InfoLevel)
		case "debug":
			level = maxLevel(level, log.DebugLevel)
		default:
			return fmt.Errorf("--log-levels: unknown level %q", name)
		}
	}
	log.SetLevel(level)
	return nil
}

// logrus levels are ordered most-severe-first, the higher value is the more
// verbose one
func maxLevel(a, b log.Level) log.Level {
	if a > b {
		return a
	}
	return b
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
