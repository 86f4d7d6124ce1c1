package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"solar_advisor/internal/advisory"
	"solar_advisor/internal/config"
	"solar_advisor/internal/ml"
	"solar_advisor/internal/models"
	"solar_advisor/internal/recommend"
	"solar_advisor/internal/service"
	"solar_advisor/internal/subsidy"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configDir string
	modelPath string
	asJSON    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "advisorctl",
		Short: "Solar efficiency advisor - offline predictions and model inspection",
		Long: `Runs the efficiency model and advisory rules locally, without the HTTP service.
Thresholds come from configs/config.yml and SOLAR_* environment variables.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configDir, "config", "configs", "Directory containing config.yml")
	rootCmd.PersistentFlags().StringVar(&g.modelPath, "model", "", "Model artifact path (overrides model.path)")
	rootCmd.PersistentFlags().BoolVar(&g.asJSON, "json", false, "Print JSON instead of text")

	rootCmd.AddCommand(predictCmd(g))
	rootCmd.AddCommand(modelCmd(g))
	rootCmd.AddCommand(subsidyCmd(g))
	rootCmd.AddCommand(recommendCmd(g))
	return rootCmd
}

// loadModel resolves config and model path; the model path flag wins over config.
func loadModel(g *globalFlags) (*config.Config, *ml.Model, error) {
	cfg, err := config.Load(g.configDir)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.Model.Path
	if g.modelPath != "" {
		path = g.modelPath
	}
	model, err := ml.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, model, nil
}

// predictCmd runs one reading through the advisory pipeline.
func predictCmd(g *globalFlags) *cobra.Command {
	var (
		temp     float64
		humidity float64
		dust     string
		days     int
		age      int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict efficiency and print maintenance alerts for one reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, model, err := loadModel(g)
			if err != nil {
				return err
			}
			advisor := service.NewPredictionService(model, advisory.NewEngine(cfg.Advisory), nil, nil, nil)

			r := models.Reading{
				TemperatureC:      temp,
				HumidityPct:       humidity,
				DustLevel:         normalizeDust(dust),
				DaysSinceCleaning: days,
				PanelAgeYears:     age,
			}
			rep, err := advisor.Advise(context.Background(), r, service.SourceCLI)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.asJSON {
				return writeJSON(out, rep)
			}
			printReport(out, rep)
			return nil
		},
	}

	cmd.Flags().Float64Var(&temp, "temp", 0, "Ambient temperature in °C")
	cmd.Flags().Float64Var(&humidity, "humidity", 0, "Relative humidity in %")
	cmd.Flags().StringVar(&dust, "dust", "", "Dust level: Low, Medium or High")
	cmd.Flags().IntVar(&days, "days", 0, "Days since last cleaning")
	cmd.Flags().IntVar(&age, "age", 0, "Panel age in years")
	for _, name := range []string{"temp", "humidity", "dust", "days", "age"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// modelCmd prints the artifact description and active thresholds.
func modelCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show model schema, tree count, checksum and thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, model, err := loadModel(g)
			if err != nil {
				return err
			}
			details := service.ModelDetails{ModelInfo: model.Info(), Thresholds: cfg.Advisory}

			out := cmd.OutOrStdout()
			if g.asJSON {
				return writeJSON(out, details)
			}
			fmt.Fprintf(out, "Algorithm:  %s\n", details.Algorithm)
			fmt.Fprintf(out, "Artifact:   %s\n", details.Path)
			fmt.Fprintf(out, "SHA-256:    %s\n", details.SHA256)
			fmt.Fprintf(out, "Trees:      %d (base score %.2f)\n", details.TreeCount, details.BaseScore)
			fmt.Fprintf(out, "Features:   %s\n", strings.Join(details.Schema, ", "))
			t := details.Thresholds
			fmt.Fprintf(out, "Optimal:    %.1f-%.1f%%, critical below %.1f%%\n", t.OptimalLower, t.OptimalUpper, t.CriticalEfficiency)
			fmt.Fprintf(out, "Cleaning:   urgent after %d days with high dust, every %d days\n", t.CriticalDustDays, t.CleaningIntervalDays)
			fmt.Fprintf(out, "Panel age:  review after %d years\n", t.AgeLimitYears)
			return nil
		},
	}
}

// subsidyCmd lists regions or prints the schemes of one region.
func subsidyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "subsidy [region]",
		Short: "List subsidy regions or show the schemes of a region",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configDir)
			if err != nil {
				return err
			}
			table, err := subsidy.Load(cfg.Subsidies.Path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if g.asJSON {
					return writeJSON(out, table.Regions())
				}
				for _, name := range table.Regions() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			region, err := table.Lookup(args[0])
			if err != nil {
				return err
			}
			if g.asJSON {
				return writeJSON(out, region)
			}
			fmt.Fprintf(out, "%s\n", region.Name)
			for _, s := range region.Schemes {
				fmt.Fprintf(out, "  - %s\n", s)
			}
			return nil
		},
	}
}

func recommendCmd(g *globalFlags) *cobra.Command {
	var (
		budget  float64
		climate string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest panels for a budget and climate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configDir)
			if err != nil {
				return err
			}
			catalog := recommend.NewCatalog(recommend.Generate(cfg.Recommend.Seed, cfg.Recommend.CatalogSize))
			res, err := catalog.Recommend(recommend.Query{Budget: budget, Climate: climate, Limit: limit})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintf(out, "Preferred type: %s (%s climate, matched on %s)\n", res.Category, res.Climate, res.Match)
			for i, p := range res.Panels {
				fmt.Fprintf(out, "%d. %s - %s: %.1f%%, %dW, Rs %d, %d-year warranty, best in %s\n",
					i+1, p.Company, p.PanelType, p.EfficiencyPct, p.PowerOutputW, p.CostINR, p.WarrantyYears, p.BestClimate)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget in rupees")
	cmd.Flags().StringVar(&climate, "climate", "", "Hot, Sunny, Temperate or Cloudy")
	cmd.Flags().IntVar(&limit, "limit", recommend.DefaultLimit, "Number of panels to show")
	_ = cmd.MarkFlagRequired("budget")
	_ = cmd.MarkFlagRequired("climate")
	return cmd
}

// normalizeDust accepts any casing of a known level; unknown values pass through
// so the encoder reports them.
func normalizeDust(s string) models.DustLevel {
	for _, l := range models.DustLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l
		}
	}
	return models.DustLevel(s)
}

func printReport(out io.Writer, rep models.AdvisoryReport) {
	fmt.Fprintf(out, "Predicted efficiency: %.2f%% (optimal %.1f-%.1f%%, %+.2f vs mid-range)\n",
		rep.Efficiency, rep.OptimalRange.Lower, rep.OptimalRange.Upper, rep.DeltaVsOptimal)
	for _, a := range rep.Alerts {
		fmt.Fprintf(out, "[%s] %s: %s\n", strings.ToUpper(string(a.Severity)), a.Title, a.Message)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
