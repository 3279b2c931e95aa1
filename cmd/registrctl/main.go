// registrctl is the desk operator's command line companion: it pulls the
// participant and organization lists through the same reconciliation
// pipeline as the server and writes them as CSV, or prints quick counts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fanaf-events/backoffice/internal/config"
	"github.com/fanaf-events/backoffice/internal/eventapi"
	"github.com/fanaf-events/backoffice/internal/export"
	"github.com/fanaf-events/backoffice/internal/logging"
	"github.com/fanaf-events/backoffice/internal/organization"
	"github.com/fanaf-events/backoffice/internal/registration"
	"github.com/joho/godotenv"
	"gopkg.in/urfave/cli.v1"
)

func initServices() (*registration.Service, *organization.Service, error) {
	godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	client := eventapi.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout)
	orgs := organization.NewService(client, cfg.API.PerPage)
	participants := registration.NewService(client, orgs, cfg.API.PerPage)
	return participants, orgs, nil
}

func parseCategories(raw []string) ([]registration.Category, error) {
	var categories []registration.Category
	for _, tag := range raw {
		c, ok := registration.ParseCategory(tag)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (expected member, not_member or vip)", tag)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func outputFile(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func main() {
	app := cli.NewApp()
	app.Name = "registrctl"
	app.Usage = "Export and inspect conference registrations from the CLI"

	categoryFlag := cli.StringSliceFlag{
		Name:  "category, c",
		Usage: "restrict to a category (member, not_member, vip); repeatable",
	}
	outFlag := cli.StringFlag{
		Name:  "out, o",
		Usage: "output file (default: stdout)",
	}

	app.Commands = []cli.Command{
		{
			Name:  "export",
			Usage: "Export the deduplicated participant list as CSV",
			Flags: []cli.Flag{categoryFlag, outFlag},
			Action: func(c *cli.Context) error {
				participants, _, err := initServices()
				if err != nil {
					return err
				}
				categories, err := parseCategories(c.StringSlice("category"))
				if err != nil {
					return err
				}

				parts := participants.LoadParticipants(context.Background(), categories, false)

				out, done, err := outputFile(c.String("out"))
				if err != nil {
					return err
				}
				defer done()

				if err := export.WriteParticipantsCSV(out, parts); err != nil {
					return err
				}
				slog.Info("participants exported", "count", len(parts))
				return nil
			},
		},
		{
			Name:  "orgs",
			Usage: "Export the organization directory as CSV",
			Flags: []cli.Flag{outFlag},
			Action: func(c *cli.Context) error {
				_, orgService, err := initServices()
				if err != nil {
					return err
				}

				orgs := orgService.LoadOrganizations(context.Background(), false)

				out, done, err := outputFile(c.String("out"))
				if err != nil {
					return err
				}
				defer done()

				if err := export.WriteOrganizationsCSV(out, orgs); err != nil {
					return err
				}
				slog.Info("organizations exported", "count", len(orgs))
				return nil
			},
		},
		{
			Name:  "stats",
			Usage: "Print participant counts by status",
			Flags: []cli.Flag{categoryFlag},
			Action: func(c *cli.Context) error {
				participants, _, err := initServices()
				if err != nil {
					return err
				}
				categories, err := parseCategories(c.StringSlice("category"))
				if err != nil {
					return err
				}

				parts := participants.LoadParticipants(context.Background(), categories, false)
				stats := registration.ComputeStats(parts)

				fmt.Printf("Participants: %d\n", stats.Total)
				for statut, n := range stats.ParStatut {
					fmt.Printf("  %-12s %d\n", statut, n)
				}
				fmt.Printf("Finalisées:   %d\n", stats.ParStatutInscription[registration.InscriptionFinalisee])
				fmt.Printf("Check-ins:    %d\n", stats.CheckIns)
				fmt.Printf("Badges:       %d\n", stats.BadgesGeneres)
				fmt.Printf("Groupes:      %d\n", stats.Groupes)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
