// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and preference database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// listCommand prints the watch list
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List movies in the watch list",
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "Only show movies with this status (to-watch or watched)",
			},
		),
		Action: r.List,
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show watched and to-watch counts",
		Flags:  outputFlags(),
		Action: r.Stats,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"find"},
		Usage:   "Search the movie database",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: append(outputFlags(),
			&cli.BoolFlag{
				Name:  "sample",
				Usage: "Show each result's poster color",
			},
		),
		Action: r.Search,
	}
}

// addCommand looks a movie up by search and adds the matching result
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a search result to the watch list",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "imdb_id",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search query that returns the movie (defaults to the IMDb ID)",
			},
			&cli.StringFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "Initial status (to-watch or watched)",
				Value:   "to-watch",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Color tag (palette id or rgb(r, g, b))",
			},
			&cli.BoolFlag{
				Name:  "sample",
				Usage: "Tag with the poster's dominant color when --color is not given",
			},
		},
		Action: r.Add,
	}
}

func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Change a movie's status or color",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "imdb_id",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "New status (to-watch or watched)",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "New color tag (palette id or rgb(r, g, b))",
			},
			&cli.BoolFlag{
				Name:  "toggle",
				Usage: "Flip between to-watch and watched",
			},
			&cli.BoolFlag{
				Name:  "cycle-color",
				Usage: "Advance to the next palette color",
			},
		},
		Action: r.Update,
	}
}

func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"rm"},
		Usage:   "Remove a movie from the watch list",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "imdb_id",
			},
		},
		Action: r.Delete,
	}
}

func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open a movie's poster in the browser",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "imdb_id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the poster URL instead of opening it",
			},
		},
		Action: r.Open,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the watch list to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (json, csv, markdown, txt)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: cinelist_export.<ext>)",
			},
		},
		Action: r.Export,
	}
}

// tintCommand backfills color tags from poster art
func tintCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tint",
		Usage: "Tag untagged movies with their poster's dominant color",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent poster samplers (max 10)",
				Value:   r.config.Tint.Workers,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Poster downloads per second",
				Value: r.config.Tint.RateLimit,
			},
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "Resample movies that already have a color",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Sample posters without writing colors",
			},
		},
		Action: r.Tint,
	}
}

func paletteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "palette",
		Usage:  "List the available color tags",
		Flags:  outputFlags(),
		Action: r.Palette,
	}
}

func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "theme",
		Usage:  "Show or change the color theme",
		Action: r.Theme,
		Commands: []*cli.Command{
			{
				Name:   "toggle",
				Usage:  "Switch between dark and light",
				Action: r.ThemeToggle,
			},
			{
				Name:  "set",
				Usage: "Select a theme by name (dark or light)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.ThemeSet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive list management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive watch list",
		Action:  r.TUI,
	}
}
