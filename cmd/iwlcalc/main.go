// Package main provides the CLI entrypoint for iwlcalc.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/iwlcalc/internal/batch"
	"github.com/verte-zerg/iwlcalc/internal/config"
	"github.com/verte-zerg/iwlcalc/internal/input"
	"github.com/verte-zerg/iwlcalc/internal/iwl"
	"github.com/verte-zerg/iwlcalc/internal/logging"
	"github.com/verte-zerg/iwlcalc/internal/model"
	"github.com/verte-zerg/iwlcalc/internal/report"
	"github.com/verte-zerg/iwlcalc/internal/tui"
)

const (
	defaultFormat     = report.FormatText
	defaultSteps      = true
	defaultReferences = false
	defaultDecimals   = report.DefaultDecimals
	defaultLogLevel   = "warn"
	defaultLogFormat  = logging.FormatConsole
	maxDecimals       = 4
)

var (
	reportFormat     string
	reportSteps      bool
	reportReferences bool
	reportDecimals   int
	reportColor      bool

	logLevel  string
	logFormat string

	patientWeight    float64
	patientHeight    float64
	patientTemp      float64
	patientRR        float64
	patientAgeYears  int
	patientAgeMonths int
	patientFactors   []string

	batchWorkers int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "iwlcalc",
		Short:         "Pediatric insensible water loss calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runFormCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&reportFormat, "format", defaultFormat, "output format: text, json, yaml")
	pf.BoolVar(&reportSteps, "steps", defaultSteps, "show calculation steps")
	pf.BoolVar(&reportReferences, "references", defaultReferences, "show references and disclaimer")
	pf.IntVar(&reportDecimals, "decimals", defaultDecimals, "decimals for volumes (0-4)")
	pf.BoolVar(&reportColor, "color", false, "force colored output")
	pf.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", defaultLogFormat, "log format: console, json")

	addPatientFlags(rootCmd)

	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newBandsCmd())
	rootCmd.AddCommand(newFactorsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPatientFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&patientWeight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&patientHeight, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&patientTemp, "temp", 0, "body temperature in °C")
	cmd.Flags().Float64Var(&patientRR, "rr", 0, "respiratory rate in breaths/min")
	cmd.Flags().IntVar(&patientAgeYears, "age-years", 0, "age, whole years")
	cmd.Flags().IntVar(&patientAgeMonths, "age-months", 0, "age, additional months")
	cmd.Flags().StringSliceVar(&patientFactors, "factor", nil, "clinical factor (repeatable): phototherapy, radiantWarmer, lowHumidity, burns")
}

func runFormCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	in, err := patientInputFromFlags(cmd)
	if err != nil {
		return err
	}
	program := tea.NewProgram(tui.NewModel(cfg, logger, in), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate IWL for one patient",
		Example: "  iwlcalc calc --weight 3 --height 50\n" +
			"  iwlcalc calc --weight 5 --height 60 --rr 70 --temp 38.5 --factor phototherapy",
		Args: cobra.NoArgs,
		RunE: runCalcCmd,
	}
	addPatientFlags(cmd)
	return cmd
}

func runCalcCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	in, err := patientInputFromFlags(cmd)
	if err != nil {
		return err
	}
	res, err := iwl.Calculate(in)
	if err != nil {
		logger.Debug("calculation rejected", zap.Error(err))
		return err
	}
	for _, w := range res.Warnings {
		logger.Info("implausible input", zap.String("warning", w))
	}
	logger.Debug("calculated",
		zap.Float64("bsa", res.BSA),
		zap.Float64("total_low", res.TotalLow),
		zap.Float64("total_high", res.TotalHigh),
	)
	if report.NormalizeFormat(cfg.Format) == report.FormatText {
		cfg.Width = report.TerminalWidth()
	}
	return report.Write(cmd.OutOrStdout(), res, cfg)
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Calculate IWL for every [[patient]] in a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatchCmd,
	}
	cmd.Flags().IntVar(&batchWorkers, "workers", 0, "parallel workers (default: number of CPUs)")
	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	if batchWorkers < 0 {
		return fmt.Errorf("--workers must be >= 0")
	}
	patients, err := batch.LoadPatients(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded batch", zap.String("path", args[0]), zap.Int("patients", len(patients)))

	rows, err := batch.NewRunner(logger, batchWorkers).Run(cmd.Context(), patients)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}
	if err := batch.Write(cmd.OutOrStdout(), rows, cfg.Format, cfg.Decimals); err != nil {
		return err
	}
	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d patients failed", failed, len(rows))
	}
	return nil
}

func newBandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "List normal respiratory rate bands by age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.WriteBands(cmd.OutOrStdout(), iwl.NormalRRBands())
		},
	}
}

func newFactorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factors",
		Short: "List clinical factors and their share of base IWL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.WriteFactors(cmd.OutOrStdout(), iwl.FactorPercentage)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// setup merges the config file under the flags and builds the logger.
func setup(cmd *cobra.Command) (model.ReportConfig, *zap.Logger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.ReportConfig{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "format", &reportFormat, fileCfg.Report.Format)
	applyBoolConfig(cmd, "steps", &reportSteps, fileCfg.Report.Steps)
	applyBoolConfig(cmd, "references", &reportReferences, fileCfg.Report.References)
	applyIntConfig(cmd, "decimals", &reportDecimals, fileCfg.Report.Decimals)
	applyBoolConfig(cmd, "color", &reportColor, fileCfg.Report.Color)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	cfg := model.ReportConfig{
		Format:     report.NormalizeFormat(reportFormat),
		Steps:      reportSteps,
		References: reportReferences,
		Decimals:   reportDecimals,
		Color:      reportColor,
	}
	if err := validateReportConfig(cfg); err != nil {
		return model.ReportConfig{}, nil, err
	}

	logger, err := logging.New(logLevel, logFormat)
	if err != nil {
		return model.ReportConfig{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Debug("config resolved",
		zap.String("path", config.DefaultConfigPath()),
		zap.String("format", cfg.Format),
		zap.Int("decimals", cfg.Decimals),
	)
	return cfg, logger, nil
}

func validateReportConfig(cfg model.ReportConfig) error {
	if !report.ValidFormat(cfg.Format) {
		return fmt.Errorf("--format must be one of text, json, yaml")
	}
	if cfg.Decimals < 0 || cfg.Decimals > maxDecimals {
		return fmt.Errorf("--decimals must be between 0 and %d", maxDecimals)
	}
	return nil
}

// patientInputFromFlags maps flags to engine input. Flags that were not set
// stay absent; weight and height are validated by the engine.
func patientInputFromFlags(cmd *cobra.Command) (model.PatientInput, error) {
	flags := cmd.Flags()
	in := model.PatientInput{
		WeightKg: patientWeight,
		HeightCm: patientHeight,
	}
	if flags.Changed("temp") {
		in.TemperatureC = &patientTemp
	}
	if flags.Changed("rr") {
		if patientRR < 0 {
			return model.PatientInput{}, fmt.Errorf("--rr must be >= 0")
		}
		in.RespiratoryRate = &patientRR
	}
	if flags.Changed("age-years") {
		if patientAgeYears < 0 {
			return model.PatientInput{}, fmt.Errorf("--age-years must be >= 0")
		}
		in.AgeYears = &patientAgeYears
	}
	if flags.Changed("age-months") {
		if patientAgeMonths < 0 {
			return model.PatientInput{}, fmt.Errorf("--age-months must be >= 0")
		}
		in.AgeMonths = &patientAgeMonths
	}
	factors, err := input.ParseFactors(patientFactors)
	if err != nil {
		return model.PatientInput{}, err
	}
	in.Factors = factors
	return in, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func syncLogger(logger *zap.Logger) {
	// stderr does not support fsync on every platform.
	_ = logger.Sync()
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# iwlcalc configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# format = %q          # Output format: text, json, yaml
# steps = %t             # Show calculation steps
# references = %t       # Show references and disclaimer
# decimals = %d            # Decimals for volumes (0-4)
# color = false           # Force colored output

[log]
# level = %q           # debug, info, warn, error
# format = %q       # console, json
`,
		defaultFormat,
		defaultSteps,
		defaultReferences,
		defaultDecimals,
		defaultLogLevel,
		defaultLogFormat,
	)
}
