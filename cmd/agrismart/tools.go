package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"agrismart/config"
	"agrismart/database"
	"agrismart/pkg/dosage"
	"agrismart/pkg/growth"
	"agrismart/pkg/record"
	"agrismart/pkg/soil"

	contactRepoImp "agrismart/pkg/contact/repositoryImp"
	recordRepoImp "agrismart/pkg/record/repositoryImp"
)

func newAnalyzeCmd() *cobra.Command {
	var f struct{ temp, hum, moist, soilType, n, p, k string }
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the soil rule engine on one sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := soil.ParseSample(soil.SampleForm{
				Temperature: soil.FormValue(f.temp),
				Humidity:    soil.FormValue(f.hum),
				Moisture:    soil.FormValue(f.moist),
				SoilType:    soil.FormValue(f.soilType),
				Nitrogen:    soil.FormValue(f.n),
				Phosphorus:  soil.FormValue(f.p),
				Potassium:   soil.FormValue(f.k),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), soil.Analyze(sample))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.temp, "temperature", "", "temperature in °C")
	fl.StringVar(&f.hum, "humidity", "", "relative humidity in %")
	fl.StringVar(&f.moist, "moisture", "", "soil moisture in %")
	fl.StringVar(&f.soilType, "soil", "", "soil type (loamy, clay, sandy, silt, peaty, chalky)")
	fl.StringVar(&f.n, "nitrogen", "", "nitrogen in ppm")
	fl.StringVar(&f.p, "phosphorus", "", "phosphorus in ppm")
	fl.StringVar(&f.k, "potassium", "", "potassium in ppm")
	return cmd
}

func newDosageCmd() *cobra.Command {
	var in dosage.Input
	var watch bool
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "dosage",
		Short: "Compute a fertilizer shopping list",
		Long: `Compute a fertilizer shopping list for a field.

With --watch, key=value lines on stdin (n, p, k, size, crop) update the
input and the plan is reprinted once edits settle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				plan, err := dosage.Calculate(in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), plan)
			}
			d := settleDelay(cmd.Flags().Changed("debounce"), debounce)
			return watchDosage(cmd.InOrStdin(), cmd.OutOrStdout(), in, d)
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&in.Nutrients.Nitrogen, "n", 0, "soil nitrogen in ppm")
	fl.Float64Var(&in.Nutrients.Phosphorus, "p", 0, "soil phosphorus in ppm")
	fl.Float64Var(&in.Nutrients.Potassium, "k", 0, "soil potassium in ppm")
	fl.Float64Var(&in.FieldSizeAcres, "size", 1, "field size in acres")
	fl.StringVar(&in.CropType, "crop", "rice", "crop type (rice, wheat, corn)")
	fl.BoolVar(&watch, "watch", false, "read key=value edits from stdin")
	fl.DurationVar(&debounce, "debounce", 500*time.Millisecond, "settle time before recomputing in --watch mode (defaults to DOSAGE_DEBOUNCE)")
	return cmd
}

// settleDelay prefers an explicit --debounce over DOSAGE_DEBOUNCE.
func settleDelay(explicit bool, flag time.Duration) time.Duration {
	if explicit {
		return flag
	}
	cfg, _ := config.Load()
	return cfg.DosageDebounce
}

func watchDosage(r io.Reader, w io.Writer, in dosage.Input, debounce time.Duration) error {
	var mu sync.Mutex
	s := dosage.NewSession(debounce, func(p dosage.Plan, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		printJSON(w, p)
	})
	defer s.Close()

	s.Update(in)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := applyEdit(&in, line); err != nil {
			mu.Lock()
			fmt.Fprintf(w, "error: %v\n", err)
			mu.Unlock()
			continue
		}
		s.Update(in)
	}
	s.Flush()
	return sc.Err()
}

func applyEdit(in *dosage.Input, line string) error {
	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", line)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	val = strings.TrimSpace(val)
	if key == "crop" {
		in.CropType = val
		return nil
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	switch key {
	case "n", "nitrogen":
		in.Nutrients.Nitrogen = v
	case "p", "phosphorus":
		in.Nutrients.Phosphorus = v
	case "k", "potassium":
		in.Nutrients.Potassium = v
	case "size":
		in.FieldSizeAcres = v
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func newGrowthCmd() *cobra.Command {
	var crop, planted, stageConfig string
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Show the growth stage of a planted crop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stageConfig == "" {
				cfg, _ := config.Load()
				stageConfig = cfg.StageConfig
			}
			catalog := growth.DefaultCatalog()
			if stageConfig != "" {
				c, err := growth.LoadCatalog(stageConfig)
				if err != nil {
					return err
				}
				catalog = c
			}
			p := growth.Plan{Crop: crop}
			if planted != "" {
				t, err := time.Parse("2006-01-02", planted)
				if err != nil {
					return fmt.Errorf("planted: %w", err)
				}
				p.PlantingDate = &t
			}
			st, err := catalog.Compute(p, time.Now())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
	cmd.Flags().StringVar(&crop, "crop", "rice", "crop name")
	cmd.Flags().StringVar(&planted, "planted", "", "planting date, YYYY-MM-DD")
	cmd.Flags().StringVar(&stageConfig, "stage-config", "", "CSV or XLSX stage table (defaults to STAGE_CONFIG)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out, kind string
	var limit int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write saved recommendations to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.OpenSQLite(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			recs, err := recordRepoImp.New(db).List(cmd.Context(), kind, limit)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := record.WriteXLSX(f, recs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d recommendations to %s\n", len(recs), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "recommendations.xlsx", "output file")
	cmd.Flags().StringVar(&kind, "kind", "", "analysis or advisory; empty for both")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows; 0 for the store default")
	return cmd
}

func newContactsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List the newest contact form messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.OpenSQLite(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			msgs, err := contactRepoImp.New(db).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msgs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum messages (1-200)")
	return cmd
}
