package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/internal"
	"gatekeeper/internal/config"
	"gatekeeper/internal/orchestrator"
	"gatekeeper/internal/rng"
	reportapi "gatekeeper/adapters/report/api"
	reportexcel "gatekeeper/adapters/report/excel"
	historypg "gatekeeper/adapters/history/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var (
		mode                string
		msFloor             float64
		pctFloor            float64
		tailMSFloor         float64
		tailPctFloor        float64
		directionality      float64
		mannWhitneyAlpha    float64
		noMannWhitney       bool
		equivalenceMarginMs float64
		seed                int64
		outputDir           string
		historyDBURL        string
		xlsxReport          string
		serve               bool
		logLevel            string
		configPath          string
	)

	cmd := &cobra.Command{
		Use:   "gate <baseline.json> <target.json>",
		Short: "Gate a performance comparison between a baseline and a target trace set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				os.Setenv("LOG_LEVEL", logLevel)
			}
			logger := internal.NewDefaultLogger()

			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return err
			}

			gc := cfg.Gate
			if mode != "" {
				gc.Mode = domaingate.Mode(mode)
			}
			applyIfSet(cmd, "ms-floor", &gc.MSFloor, msFloor)
			applyIfSet(cmd, "pct-floor", &gc.PctFloor, pctFloor)
			applyIfSet(cmd, "tail-ms-floor", &gc.TailMSFloor, tailMSFloor)
			applyIfSet(cmd, "tail-pct-floor", &gc.TailPctFloor, tailPctFloor)
			applyIfSet(cmd, "directionality", &gc.DirectionalityThreshold, directionality)
			applyIfSet(cmd, "mann-whitney-alpha", &gc.Alpha, mannWhitneyAlpha)
			applyIfSet(cmd, "equivalence-margin-ms", &gc.EquivalenceMarginMs, equivalenceMarginMs)
			if cmd.Flags().Changed("no-mann-whitney") {
				gc.UseMannWhitney = !noMannWhitney
			}
			if cmd.Flags().Changed("seed") {
				gc.Seed = seed
			}
			if historyDBURL != "" {
				cfg.History = &config.HistoryConfig{DatabaseURL: historyDBURL}
			}
			if xlsxReport != "" {
				cfg.Report.XLSXPath = xlsxReport
			}
			if serve {
				cfg.Server.Enabled = true
			}

			return runGate(cmd.Context(), args[0], args[1], gc, cfg, outputDir, logger)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "gate mode: pr|release (default from config)")
	cmd.Flags().Float64Var(&msFloor, "ms-floor", 0, "absolute median regression floor in ms")
	cmd.Flags().Float64Var(&pctFloor, "pct-floor", 0, "relative median regression floor as a fraction")
	cmd.Flags().Float64Var(&tailMSFloor, "tail-ms-floor", 0, "absolute tail regression floor in ms")
	cmd.Flags().Float64Var(&tailPctFloor, "tail-pct-floor", 0, "relative tail regression floor as a fraction")
	cmd.Flags().Float64Var(&directionality, "directionality", 0.70, "informational directionality threshold surfaced in details")
	cmd.Flags().Float64Var(&mannWhitneyAlpha, "mann-whitney-alpha", 0, "Mann-Whitney significance level")
	cmd.Flags().BoolVar(&noMannWhitney, "no-mann-whitney", false, "disable the Mann-Whitney detector")
	cmd.Flags().Float64Var(&equivalenceMarginMs, "equivalence-margin-ms", 0, "release-mode TOST equivalence margin in ms")
	cmd.Flags().Int64Var(&seed, "seed", 0, "bootstrap PRNG seed")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory to write per-trace JSON results to")
	cmd.Flags().StringVar(&historyDBURL, "history-db-url", "", "Postgres DSN for trend history (env GATE_HISTORY_DATABASE_URL)")
	cmd.Flags().StringVar(&xlsxReport, "xlsx-report", "", "path to write an .xlsx workbook report to")
	cmd.Flags().BoolVar(&serve, "serve", false, "serve the last run's results over a read-only HTTP API")
	cmd.Flags().StringVarP(&logLevel, "log-level", "v", "", "log level: ERROR|WARN|INFO|DEBUG|TRACE")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a .env-style config file (default: .env in the working directory)")

	return cmd
}

// applyIfSet overwrites dst with value only when the named flag was actually
// passed, so zero-valued flags never clobber config-file/env defaults.
func applyIfSet(cmd *cobra.Command, flag string, dst *float64, value float64) {
	if cmd.Flags().Changed(flag) {
		*dst = value
	}
}

func runGate(ctx context.Context, baselinePath, targetPath string, gc domaingate.Config, cfg *config.Config, outputDir string, logger *internal.Logger) error {
	baselineFile, err := os.Open(baselinePath)
	if err != nil {
		return err
	}
	defer baselineFile.Close()

	targetFile, err := os.Open(targetPath)
	if err != nil {
		return err
	}
	defer targetFile.Close()

	rngPort := rng.NewAdapter()
	report, err := orchestrator.Run(ctx, baselineFile, targetFile, gc, rngPort, 0, logger)
	if err != nil {
		logger.Error("gate run failed: %v", err)
		os.Exit(int(orchestrator.ExitInputErr))
		return err
	}

	for _, name := range report.Missing {
		logger.Warn("trace %q present on only one side; skipped", name)
	}

	if err := writeResults(outputDir, report); err != nil {
		return err
	}

	if cfg.Report.XLSXPath != "" {
		if err := reportexcel.WriteWorkbook(cfg.Report.XLSXPath, report.Results); err != nil {
			logger.Error("xlsx report: %v", err)
		}
	}

	if cfg.History != nil {
		if err := persistHistory(ctx, cfg.History.DatabaseURL, report, logger); err != nil {
			logger.Error("history persistence: %v", err)
		}
	}

	printSummary(report, gc)

	if cfg.Server.Enabled {
		srv := reportapi.NewServer()
		srv.SetResults(report.Results)
		logger.Info("serving results on :%s", cfg.Server.Port)
		if err := http.ListenAndServe(":"+cfg.Server.Port, srv); err != nil {
			logger.Error("results server: %v", err)
		}
	}

	os.Exit(int(report.ExitCode))
	return nil
}

func persistHistory(ctx context.Context, dsn string, report *orchestrator.Report, logger *internal.Logger) error {
	repo, err := historypg.Open(dsn)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.SaveRun(ctx, report.RunID, report.Fingerprint, report.Results)
}
