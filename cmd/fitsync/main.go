// Command fitsync fetches body measurements from Withings, encodes them as
// a FIT file and optionally uploads the result to Garmin Connect.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	fitsync "github.com/openhealth/fitsync"
	"github.com/openhealth/fitsync/compress"
	"github.com/openhealth/fitsync/garmin"
	"github.com/openhealth/fitsync/state"
	"github.com/openhealth/fitsync/withings"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		configPath  string
		fromDate    string
		toDate      string
		uploadSink  bool
		outputFIT   string
		outputJSON  string
		compression string
		verbose     bool
	)

	app := &cli.Command{
		Name:  "fitsync",
		Usage: "Sync Withings body measurements to Garmin Connect as FIT files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.toml",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "from",
				Aliases:     []string{"f"},
				Usage:       "start date (YYYY-MM-DD); defaults to the last sync",
				Destination: &fromDate,
			},
			&cli.StringFlag{
				Name:        "to",
				Aliases:     []string{"t"},
				Usage:       "end date (YYYY-MM-DD); defaults to now",
				Destination: &toDate,
			},
			&cli.BoolFlag{
				Name:        "garmin",
				Usage:       "upload the encoded FIT file to Garmin Connect",
				Destination: &uploadSink,
			},
			&cli.StringFlag{
				Name:        "output-fit",
				Usage:       "write the encoded FIT file to this path",
				Destination: &outputFIT,
			},
			&cli.StringFlag{
				Name:        "output-json",
				Usage:       "archive fetched measurements as JSON to this path",
				Destination: &outputJSON,
			},
			&cli.StringFlag{
				Name:        "archive-compression",
				Usage:       "compression for the JSON archive (none, zstd, s2, lz4)",
				Destination: &compression,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "enable debug logging",
				Destination: &verbose,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			explicitConfig := configPath != ""
			if !explicitConfig {
				configPath = filepath.Join(defaultConfigDir(), "config.toml")
			}

			cfg, err := loadConfig(configPath, explicitConfig)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			// Flags win over file values.
			if c.IsSet("output-fit") {
				cfg.OutputFIT = outputFIT
			}
			if c.IsSet("output-json") {
				cfg.OutputJSON = outputJSON
			}
			if c.IsSet("archive-compression") {
				codec, err := compress.ParseType(compression)
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				cfg.ArchiveCodec = codec
			}
			if c.IsSet("verbose") {
				cfg.Verbose = verbose
			}

			opts := fitsync.RunOptions{
				OutputFIT:    cfg.OutputFIT,
				OutputJSON:   cfg.OutputJSON,
				ArchiveCodec: cfg.ArchiveCodec,
			}

			if fromDate != "" {
				opts.From, err = time.Parse(dateLayout, fromDate)
				if err != nil {
					return cli.Exit(fmt.Sprintf("invalid --from date %q: expected YYYY-MM-DD", fromDate), 1)
				}
			}
			if toDate != "" {
				day, err := time.Parse(dateLayout, toDate)
				if err != nil {
					return cli.Exit(fmt.Sprintf("invalid --to date %q: expected YYYY-MM-DD", toDate), 1)
				}
				// Inclusive end date.
				opts.To = day.Add(24*time.Hour - time.Second)
			}

			logger, closeLog, err := setupLogger(cfg.Verbose, cfg.LogDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer closeLog()

			source, err := withings.NewClient(withings.Config{
				AccessToken: cfg.WithingsAccessToken,
			})
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			var sink fitsync.Sink
			if uploadSink {
				garminSink, err := garmin.NewClient(garmin.Config{
					SessionToken: cfg.GarminSessionToken,
				})
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				sink = garminSink
			}

			st, err := state.Load(cfg.StatePath)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			syncer := fitsync.NewSyncer(source, sink, st, logger)
			if err := syncer.Run(ctx, opts); err != nil {
				logger.Error().Err(err).Msg("sync failed")
				return cli.Exit(err.Error(), 1)
			}

			if err := st.Save(cfg.StatePath); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
