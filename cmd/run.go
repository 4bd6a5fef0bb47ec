package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"are-we-consistent-yet/core/backend"
	"are-we-consistent-yet/core/config"
	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/core/logger"
	"are-we-consistent-yet/feature/runs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure the eventual consistency of an object store",
	Long: `Creates the container, runs the five probes (read after create, read after
delete, read after overwrite, list after create, list after delete) and deletes
the container. Each probe reports how many of its iterations observed a stale result.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		properties, _ := cmd.Flags().GetString("properties")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")
		probeName, _ := cmd.Flags().GetString("probe")

		var probe consistency.Probe
		if probeName != "" {
			p, err := consistency.ParseProbe(probeName)
			if err != nil {
				return err
			}
			if save {
				return fmt.Errorf("%w: --save needs a full run, not --probe", consistency.ErrInvalidConfig)
			}
			probe = p
		}

		cfg, err := config.LoadConfig(".", properties)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := applyProbeFlags(cmd, &cfg.Probe); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := backend.Open(cfg.Storage, cfg.Probe, logg)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer b.Close()

		var store *runs.Store
		if save {
			if store, err = openHistory(cfg); err != nil {
				return err
			}
		}

		svc := runs.NewService(b, store, runs.Options{Defaults: cfg.Probe}, logg)
		if probe != "" {
			res, err := svc.RunProbe(ctx, runs.RunRequest{}, probe)
			if res == nil {
				return err
			}
			if printErr := printProbe(cmd.OutOrStdout(), *res, jsonOutput); printErr != nil {
				return printErr
			}
			return err
		}

		rec, err := svc.Run(ctx, runs.RunRequest{})
		if rec == nil {
			return err
		}
		if printErr := printReport(cmd.OutOrStdout(), *rec, jsonOutput); printErr != nil {
			return printErr
		}
		if err == nil && store != nil {
			logg.Info("Run saved", zap.Uint("id", rec.ID))
		}
		return err
	},
}

// applyProbeFlags overrides probe settings with the flags set on the command line.
func applyProbeFlags(cmd *cobra.Command, probe *consistency.Config) error {
	flags := cmd.Flags()
	if flags.Changed("container-name") {
		probe.Container, _ = flags.GetString("container-name")
	}
	if flags.Changed("iterations") {
		probe.Iterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("size") {
		probe.ObjectSize, _ = flags.GetInt64("size")
	}
	if flags.Changed("location") {
		probe.Location, _ = flags.GetString("location")
		if probe.Location == "" {
			return fmt.Errorf("%w: --location is empty", consistency.ErrUnknownLocation)
		}
	}
	if flags.Changed("reader-endpoint") {
		probe.ReaderEndpoint, _ = flags.GetString("reader-endpoint")
	}
	if flags.Changed("isolated-reader") {
		probe.IsolatedReader, _ = flags.GetBool("isolated-reader")
	}
	return nil
}

// printReport writes the report of rec as text or indented JSON.
func printReport(w io.Writer, rec runs.RunRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	if _, err := fmt.Fprintf(w, "eventual consistency count with %d iterations:\n", rec.Iterations); err != nil {
		return err
	}
	for _, line := range rec.Report().Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// printProbe writes a single-probe result as text or indented JSON.
func printProbe(w io.Writer, res runs.ProbeResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err := fmt.Fprintf(w, "eventual consistency count with %d iterations:\n%s: %d\n", res.Iterations, res.Probe, res.Count)
	return err
}

func init() {
	f := runCmd.Flags()
	f.String("container-name", "", "container name for tests, will be created and removed (default probe.container)")
	f.Int("iterations", 1, "number of iterations")
	f.Int64("size", 1, "object size in bytes")
	f.String("location", "", "container location")
	f.String("properties", "", "configuration file")
	f.String("reader-endpoint", "", "separate endpoint to read from")
	f.Bool("isolated-reader", false, "read from a separate store that never sees the writes (transient provider only)")
	f.Bool("json", false, "print the report as JSON")
	f.Bool("save", false, "store the report in the run history database")
	f.String("probe", "", "run a single probe: "+probeSlugs())
	RootCmd.AddCommand(runCmd)
}

func probeSlugs() string {
	slugs := make([]string, len(consistency.Probes))
	for i, p := range consistency.Probes {
		slugs[i] = p.Slug()
	}
	return strings.Join(slugs, ", ")
}
