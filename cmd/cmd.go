// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the session database",
		Action: r.SetupDatabase,
		Commands: []*cli.Command{
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.ResetDatabase,
			},
		},
	}
}

// filterFlags are shared by every command that narrows the catalog.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Case-insensitive match on event name or location",
		},
		&cli.StringFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "Exact genre, or All",
			Value:   "All",
		},
		&cli.StringFlag{
			Name:    "location",
			Aliases: []string{"l"},
			Usage:   "Exact location, or All",
			Value:   "All",
		},
	}
}

func interactiveFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "Fill in the form interactively",
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account registration and session management",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name"},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "contact", Usage: "10 digit contact number"},
					&cli.StringFlag{Name: "password", Usage: "Password (8+ chars with an uppercase letter, a number and a special character)"},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Account role: User or Event Organizer",
						Value: "User",
					},
					&cli.BoolFlag{
						Name:  "organizer",
						Usage: "Register as an Event Organizer",
					},
					interactiveFlag(),
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "password", Usage: "Password"},
					interactiveFlag(),
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session",
				Flags:  outputFlags(),
				Action: r.AuthStatus,
			},
			{
				Name:  "import",
				Usage: "Import a session from a browser \"Copy as cURL\" command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command string",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "File containing the cURL command",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email of the account the session belongs to",
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Account role: User or Event Organizer",
						Value: "User",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// eventsCommand handles catalog operations
func eventsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "events",
		Aliases: []string{"ev"},
		Usage:   "Browse and book events",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List events matching the filters",
				Flags: append(append(filterFlags(), outputFlags()...),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: table, md, csv or text",
						Value:   "table",
					},
				),
				Action: r.EventsList,
			},
			{
				Name:  "show",
				Usage: "Show one event",
				Flags: append(outputFlags(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Event ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the details page in the browser",
					},
				),
				Action: r.EventsShow,
			},
			{
				Name:  "buy",
				Usage: "Go to the payment page for an event",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Event ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Print the navigation payload instead of opening the browser",
					},
				},
				Action: r.EventsBuy,
			},
			{
				Name:  "export",
				Usage: "Export the filtered catalog to files",
				Flags: append(filterFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: events_export_{timestamp})",
					},
					&cli.StringSliceFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Formats to write: csv, md, txt, json (default: all)",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Markdown heading",
						Value: "Events",
					},
					&cli.BoolFlag{
						Name:  "images",
						Usage: "Download each event's cover image",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent image downloads",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Image downloads per second",
						Value: 5,
					},
				),
				Action: r.EventsExport,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse events interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the UI owns the terminal",
				Value: "./tmp/spotlite-tui.log",
			},
		},
		Action: r.TUI,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the filtered catalog as JSON on a local address",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
		},
		Action: r.Serve,
	}
}
