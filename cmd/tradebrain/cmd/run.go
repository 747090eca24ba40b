package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rustyeddy/tradebrain/config"
	"github.com/rustyeddy/tradebrain/journal"
	"github.com/rustyeddy/tradebrain/logger"
	"github.com/rustyeddy/tradebrain/metrics"
	"github.com/rustyeddy/tradebrain/position"
	"github.com/rustyeddy/tradebrain/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a command script against a fresh position",
	Long: `Run a session: seed the position book from the config, replay every
command in a CSV script and print the final snapshot.

Script rows are "command,p1,p2,p3". An empty risk line takes the
session's risk_line from the config.

  set_stock_price,<price>
  set_risk_per_trade,<amount>
  add_trade,<multiplier>,<buy|sell>,[risk line]
  execute_by_risk_percent,<percent>,<buy|sell>,[risk line]
  sell_existing_trade,<buy|sell>,<shares>,[risk line]
  sell_by_position_percent,<percent>,[risk line]
  add_stop,<shares>,<price>
  add_target,<shares>,<price>
  rebalance_orders

Rejected commands are logged and skipped unless --strict is set.

Example:
  tradebrain run -c session.yaml -s trades.csv --format json`,
	RunE: runRun,
}

var (
	runScriptPath  string
	runMetricsAddr string
	runFormat      string
	runStrict      bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runScriptPath, "script", "s", "", "path to CSV command script (required)")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running (overrides config)")
	runCmd.Flags().StringVar(&runFormat, "format", "yaml", "snapshot output format: yaml, json or org")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "fail when any command is rejected")
	runCmd.MarkFlagRequired("script")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	switch runFormat {
	case "yaml", "json", "org":
	default:
		return fmt.Errorf("unknown format %q", runFormat)
	}
	if runMetricsAddr != "" {
		cfg.Metrics.Addr = runMetricsAddr
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	cmds, err := session.LoadScript(runScriptPath, cfg.Session.RiskLine)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(log, cfg.Metrics, reg)
		defer stop()
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	sess, err := session.New(cfg.Session,
		session.WithLogger(log),
		session.WithMetrics(m),
		session.WithJournal(j),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	snap, runErr := sess.Run(ctx, cmds)
	if runErr != nil {
		log.Warn("script finished with rejected commands", zap.Error(runErr))
	}

	if err := writeSnapshot(cmd.OutOrStdout(), runFormat, sess, snap); err != nil {
		return err
	}

	if errors.Is(runErr, context.Canceled) || (runStrict && runErr != nil) {
		return runErr
	}
	return nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.ExecutionsFile, cfg.SnapshotsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return journal.Discard, nil
	}
}

func serveMetrics(log *zap.Logger, cfg config.MetricsConfig, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler(reg))
	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", zap.String("addr", cfg.Addr), zap.String("path", cfg.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func writeSnapshot(w io.Writer, format string, sess *session.Session, snap position.Snapshot) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "org":
		_, err := io.WriteString(w, formatRunOrg(sess, snap))
		return err
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
}

func formatRunOrg(sess *session.Session, snap position.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s (%s)\n", sess.Instrument(), strings.ToUpper(snap.Direction.String()), sess.ID())

	if len(snap.Trades) == 0 {
		b.WriteString("No open round trip.\n")
	} else {
		b.WriteString("| # | op | shares | price | risk line |\n")
		b.WriteString("|---+----+--------+-------+-----------|\n")
		for n, t := range snap.Trades {
			fmt.Fprintf(&b, "| %d | %s | %d | %.2f | %.2f |\n", n, t.Operation, t.SharesCount, t.StockPrice, t.RiskLine)
		}
	}

	b.WriteString(journal.FormatSnapshotOrg(sess.SnapshotRecord("run", snap)))
	return b.String()
}
