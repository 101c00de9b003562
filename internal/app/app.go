package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"labeleval/internal/config"
	"labeleval/internal/confusion"
	"labeleval/internal/csvio"
	"labeleval/internal/domain"
	"labeleval/internal/evaluate"
	"labeleval/internal/httpx"
	slackbot "labeleval/internal/integrations/slack"
	"labeleval/internal/report"
	"labeleval/internal/scheduler"
	"labeleval/internal/storage/sqlite"
)

func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("labeleval: %v", err)
	}
}

// NewRootCommand builds the labeleval command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "labeleval",
		Short:         "Evaluate classifier emotion and domain labels against manual annotations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvalCommand(), newServeCommand(), newHistoryCommand())
	return root
}

type runtime struct {
	cfg      config.Config
	db       *sql.DB
	notifier *slackbot.Notifier
}

func openRuntime() (*runtime, error) {
	cfg := config.LoadConfig()
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. Store=%t Slack=%t Schedule=%q Timezone=%s ExternalHTTPTimeout=%s",
		cfg.StoreConfigured(), cfg.SlackConfigured(), cfg.Schedule, cfg.Timezone, appliedHTTPTimeout,
	)

	rt := &runtime{cfg: cfg, notifier: slackbot.NewNotifier(cfg)}
	if cfg.StoreConfigured() {
		db, err := sqlite.InitDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		log.Printf("Database initialized at %s", cfg.DBPath)
		rt.db = db
	}
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
}

func (rt *runtime) columns() csvio.Options {
	return csvio.Options{EmotionColumn: rt.cfg.EmotionColumn, DomainColumn: rt.cfg.DomainColumn}
}

// evaluateOnce runs one batch and fans the result out to every configured sink.
func (rt *runtime) evaluateOnce(ctx context.Context, req evaluate.Request, heatmapPath string, out io.Writer) (domain.RunSummary, error) {
	summary, res, err := evaluate.File(req)
	if err != nil {
		return summary, err
	}

	if heatmapPath != "" {
		err := csvio.WriteFile(heatmapPath, func(w io.Writer) error {
			return report.RenderHeatmaps(w, res.EmotionTable, res.DomainTable)
		})
		if err != nil {
			return summary, err
		}
		summary.Outputs.HeatmapHTML = heatmapPath
	}

	if rt.db != nil {
		if err := sqlite.InsertRun(rt.db, summary, res.EmotionTable, res.DomainTable); err != nil {
			return summary, fmt.Errorf("store run: %w", err)
		}
		log.Printf("Stored run %s", summary.RunID)
	}

	if err := report.WriteSummary(out, summary); err != nil {
		return summary, err
	}

	if err := rt.notifier.Post(ctx, report.FormatSlackSummary(summary, res.EmotionTable, res.DomainTable)); err != nil {
		log.Printf("Slack post error: %v", err)
	}
	return summary, nil
}

func newEvalCommand() *cobra.Command {
	var (
		outputs     domain.OutputPaths
		heatmapPath string
	)
	cmd := &cobra.Command{
		Use:   "eval <input.csv>",
		Short: "Bucket one input file and write the augmented CSV and confusion tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if heatmapPath == "" {
				heatmapPath = rt.cfg.HeatmapPath
			}
			req := evaluate.Request{InputPath: args[0], Outputs: outputs, Columns: rt.columns()}
			_, err = rt.evaluateOnce(cmd.Context(), req, heatmapPath, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&outputs.AugmentedCSV, "output", "", "augmented CSV output path (default: *_with_buckets.csv)")
	cmd.Flags().StringVar(&outputs.EmotionConfusionCSV, "emotion-cm", "", "emotion confusion matrix CSV path (default: *_emotion_cm.csv)")
	cmd.Flags().StringVar(&outputs.DomainConfusionCSV, "domain-cm", "", "domain confusion matrix CSV path (default: *_domain_cm.csv)")
	cmd.Flags().StringVar(&heatmapPath, "heatmap", "", "write an HTML heatmap of both confusion tables to this path")
	return cmd
}

func newServeCommand() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Re-run the evaluation on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if input == "" {
				input = rt.cfg.ScheduleInput
			}
			if input == "" {
				return errors.New("no input: set schedule_input or pass --input")
			}
			if rt.cfg.Schedule == "" {
				return errors.New("schedule is not set")
			}
			sched, err := config.ParseSchedule(rt.cfg.Schedule)
			if err != nil {
				return fmt.Errorf("invalid schedule %q: %w", rt.cfg.Schedule, err)
			}
			log.Printf("Evaluation scheduled (cron: %s) for %s", rt.cfg.Schedule, input)

			out := cmd.OutOrStdout()
			err = scheduler.Run(cmd.Context(), sched, rt.cfg.Location, func(ctx context.Context) error {
				req := evaluate.Request{InputPath: input, Columns: rt.columns()}
				_, err := rt.evaluateOnce(ctx, req, rt.cfg.HeatmapPath, out)
				return err
			})
			if errors.Is(err, context.Canceled) {
				log.Println("Scheduler stopped")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input CSV to evaluate (default: schedule_input)")
	return cmd
}

func newHistoryCommand() *cobra.Command {
	var (
		limit   int
		csvPath string
		runIDs  []string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored evaluation runs as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.db == nil {
				return errors.New("db_path is not configured")
			}
			if len(runIDs) > 0 {
				return writeStoredTables(rt.db, runIDs, cmd.OutOrStdout())
			}
			runs, err := sqlite.ListRuns(rt.db, limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if csvPath == "" {
				return gocsv.Marshal(runs, cmd.OutOrStdout())
			}
			if err := csvio.WriteFile(csvPath, func(w io.Writer) error {
				return gocsv.Marshal(runs, w)
			}); err != nil {
				return err
			}
			log.Printf("Wrote %d runs to %s", len(runs), csvPath)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the runs to this CSV file instead of stdout")
	cmd.Flags().StringSliceVar(&runIDs, "run", nil, "print the stored confusion tables of these runs, summed")
	return cmd
}

// writeStoredTables prints the confusion tables of runIDs, one per axis,
// with the counts of every run added together.
func writeStoredTables(db *sql.DB, runIDs []string, out io.Writer) error {
	for _, axis := range []domain.Axis{domain.AxisEmotion, domain.AxisDomain} {
		t := confusion.NewTable()
		for _, id := range runIDs {
			stored, err := sqlite.GetConfusionTable(db, id, axis)
			if err != nil {
				return fmt.Errorf("load %s table of %s: %w", axis, id, err)
			}
			t.Merge(stored)
		}
		fmt.Fprintf(out, "# %s\n", axis)
		if err := csvio.WriteConfusion(out, t); err != nil {
			return err
		}
	}
	return nil
}
