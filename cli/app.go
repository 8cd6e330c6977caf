// Package cli contains the plantool command line app: dumps of the plans and fire
// timelines a config produces, for checking a config before a match.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig         = "config"
	flagDebug          = "debug"
	flagClassification = "classification"
	flagMode           = "mode"
	flagStep           = "step"
)

// NewApp returns a new app with Writer set to out and ErrWriter set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "plantool",
		Usage:           "inspect autonomous plans and fire timelines",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`, defaults are used otherwise",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plans",
				Usage:     "print the plan built for each classification",
				UsageText: "plantool plans [--classification NAME]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagClassification,
						Usage: "only print the plan for one classification (low, high or unclassified)",
					},
				},
				Action: PlansAction,
			},
			{
				Name:      "fire",
				Usage:     "print the kicker and turn timeline of a fire mode",
				UsageText: "plantool fire [--mode MODE] [--step SECONDS]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagMode,
						Usage: "fire mode (simple, extended or powershot), defaults to the configured mode",
					},
					&cli.Float64Flag{
						Name:  flagStep,
						Value: 0.5,
						Usage: "sample interval in seconds",
					},
				},
				Action: FireAction,
			},
			{
				Name:   "validate",
				Usage:  "check a config and print its summary",
				Action: ValidateAction,
			},
		},
	}
}

// printf prints a message with a newline.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
