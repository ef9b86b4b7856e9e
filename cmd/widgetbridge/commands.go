package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/widgetbridge/internal/app"
	"github.com/preston-bernstein/widgetbridge/internal/compat/xeninfo"
	"github.com/preston-bernstein/widgetbridge/internal/config"
	"github.com/preston-bernstein/widgetbridge/internal/emulation"
	"github.com/preston-bernstein/widgetbridge/internal/logging"
	providerweather "github.com/preston-bernstein/widgetbridge/internal/providers/weather"
	"github.com/preston-bernstein/widgetbridge/internal/server"
	"github.com/preston-bernstein/widgetbridge/internal/snapshots"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:           appName,
		Short:         "Widget runtime bridge and data normalizer",
		Long:          "Bridges widget runtimes to a native host, normalizes host data and serves the legacy IS2 and XenInfo APIs.",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newEmulateCmd(), newNormalizeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bridge and HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if os.Getenv(skipRunEnv) == "1" {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.NewLogger(logging.Config{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				Service: appName,
				Version: appVersion,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, logger)
			srv.Run(ctx, stop)
			return nil
		},
	}
}

func newEmulateCmd() *cobra.Command {
	var (
		cityFlag    string
		unitsFlag   string
		sectionFlag string
		tzFlag      string
		fromFlag    string
	)
	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Load sample host data and print the XenInfo globals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			city, err := emulation.ParseCity(cityFlag)
			if err != nil {
				return err
			}
			units, err := emulation.ParseUnits(unitsFlag)
			if err != nil {
				return err
			}
			loc, err := loadLocation(tzFlag)
			if err != nil {
				return err
			}

			rt := app.New(app.Options{
				Location:     loc,
				Logger:       cliLogger(cmd.ErrOrStderr()),
				ForwardLevel: slog.LevelError,
			})
			emu := rt.Emulate(city, units, 0)
			defer emu.Close()
			if fromFlag != "" {
				n, err := emu.Harness.LoadCaptured(snapshots.NewFSStore(fromFlag))
				if err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("no captures under %s", fromFlag)
				}
			} else if err := emu.Harness.Load(city); err != nil {
				return err
			}

			globals := rt.Globals.Store()
			if sectionFlag == "" {
				return writeJSON(cmd.OutOrStdout(), globals.All())
			}
			bindings, ok := globals.Section(sectionFlag)
			if !ok {
				return fmt.Errorf("unknown section %q (want one of %s)", sectionFlag, strings.Join(xeninfo.Sections(), ", "))
			}
			return writeJSON(cmd.OutOrStdout(), bindings)
		},
	}
	cmd.Flags().StringVar(&cityFlag, "city", string(emulation.CitySanFrancisco), "fixture city (sf, london)")
	cmd.Flags().StringVar(&unitsFlag, "units", string(emulation.UnitsMetric), "fixture units (metric, imperial)")
	cmd.Flags().StringVar(&sectionFlag, "namespace", "", "print one XenInfo section only (weather, battery, system, ...)")
	cmd.Flags().StringVar(&tzFlag, "timezone", "", "device timezone (IANA name, default local)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "replay the newest captures under this SNAPSHOT_DIR instead of the bundled fixtures")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var tzFlag string
	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Normalize a raw weather payload (JSON or YAML) and print the canonical snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(args[0])
			if err != nil {
				return err
			}
			loc, err := loadLocation(tzFlag)
			if err != nil {
				return err
			}
			snap, err := providerweather.NewNormalizer(loc, cliLogger(cmd.ErrOrStderr())).Normalize(raw)
			if err != nil {
				return fmt.Errorf("normalize %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), snap)
		},
	}
	cmd.Flags().StringVar(&tzFlag, "timezone", "", "device timezone (IANA name, default local)")
	return cmd
}

func readPayload(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func cliLogger(w io.Writer) *slog.Logger {
	return logging.NewLoggerTo(logging.Config{Level: "warn"}, w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

