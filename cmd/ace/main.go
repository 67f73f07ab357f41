//
//  Copyright © Courseflow Inc. All rights reserved.
//

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/courseflow/accessengine/cmd/ace/subcommands/eval"
	"github.com/courseflow/accessengine/cmd/ace/subcommands/lint"
	"github.com/courseflow/accessengine/cmd/ace/subcommands/serve"
	"github.com/courseflow/accessengine/cmd/ace/subcommands/timeline"
	"github.com/courseflow/accessengine/cmd/ace/version"
)

func fileFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Load access-rule document from `FILE` (.yml, .yaml)",
		Required: required,
	}
}

func contextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "User ID to evaluate for",
		},
		&cli.StringSliceFlag{
			Name:    "group",
			Aliases: []string{"g"},
			Usage:   "Group the user belongs to.  Can be specified multiple times.",
		},
		&cli.StringSliceFlag{
			Name:    "label",
			Aliases: []string{"l"},
			Usage:   "Label attached to the user.  Can be specified multiple times.",
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "ace",
		Usage:   "A CLI application for working with assessment access-control rules",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat validation warnings as errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "lint",
				Usage: "Validate access-rule YAML files and report structural errors and warnings",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Access-rule YAML file to lint (.yml, .yaml). Can be specified multiple times.",
						Required: true,
					},
				},
				Action: lint.Execute,
			},
			{
				Name:  "eval",
				Usage: "Evaluate access, credit, and visibility for a user context at an instant",
				Flags: append([]cli.Flag{
					fileFlag(true),
					&cli.StringFlag{
						Name:  "at",
						Usage: "Instant to evaluate at, RFC 3339 (default: now)",
					},
					&cli.StringFlag{
						Name:  "completed-at",
						Usage: "Instant the user completed the assessment, RFC 3339 (default: not completed)",
					},
				}, contextFlags()...),
				Action: eval.Execute,
			},
			{
				Name:  "timeline",
				Usage: "Render the chronological schedule for a user context",
				Flags: append([]cli.Flag{
					fileFlag(true),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit the timeline as JSON instead of a table",
					},
				}, contextFlags()...),
				Action: timeline.Execute,
			},
			{
				Name:  "serve",
				Usage: "Creates a decision-point service",
				Flags: []cli.Flag{
					fileFlag(true),
					&cli.IntFlag{
						Name:  "port",
						Usage: "The TCP port to serve on.",
						Value: 8080,
					},
				},
				Action: serve.Execute,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
