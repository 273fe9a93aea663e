// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database and configuration initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize local storage and write a starter config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "Write the example config to the --config path",
			},
		},
		Action: r.Setup,
	}
}

// calcCommand computes a jump height without video, straight from instants.
func calcCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "calc",
		Usage: "Compute jump height from take-off/landing instants or a flight time",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "takeoff",
				Usage: "Take-off instant in seconds",
			},
			&cli.FloatFlag{
				Name:  "landing",
				Usage: "Landing instant in seconds",
			},
			&cli.FloatFlag{
				Name:  "flight",
				Usage: "Flight time in seconds (overrides takeoff/landing)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Calc,
	}
}

// usersCommand handles local profile operations.
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Aliases: []string{"user"},
		Usage:   "Manage local user profiles",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List profiles",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:  "create",
				Usage: "Create a profile and make it current",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.UsersCreate,
			},
			{
				Name:  "switch",
				Usage: "Switch the current profile",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Profile ID to switch to",
						Required: true,
					},
				},
				Action: r.UsersSwitch,
			},
			{
				Name:   "current",
				Usage:  "Show the current profile",
				Action: r.UsersCurrent,
			},
			{
				Name:  "delete",
				Usage: "Delete a profile (its saved jumps are kept)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Profile ID to delete",
						Required: true,
					},
				},
				Action: r.UsersDelete,
			},
		},
	}
}

// historyCommand handles saved jump records.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse and export saved jumps for the current user",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the current user's jumps, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of records to show",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "delete",
				Usage: "Delete a record by ID",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Record ID to delete",
						Required: true,
					},
				},
				Action: r.HistoryDelete,
			},
			{
				Name:  "export",
				Usage: "Export the current user's history",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, md, or text",
						Value: "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to stdout)",
					},
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the export to the clipboard",
					},
				},
				Action: r.HistoryExport,
			},
		},
	}
}

// markCommand launches the interactive marking TUI against a video file.
func markCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "mark",
		Aliases: []string{"tui", "measure"},
		Usage:   "Open a video and mark take-off/landing interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "video",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "fps",
				Usage: "Frame-stepping rate (coerced to at least 1)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Initial playback speed (0.1, 0.25, 0.5, 1, 1.5, 2)",
			},
			&cli.StringFlag{
				Name:  "socket",
				Usage: "mpv IPC socket path (defaults to a temp path)",
			},
		},
		Action: r.Mark,
	}
}
