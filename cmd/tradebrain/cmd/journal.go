package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/tradebrain/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query session journal data",
	Long: `Query and display sessions and executions from the SQLite journal.

Subcommands:
  sessions   - List recorded sessions, newest first
  executions - List the executions of a session
  show       - Show a session with its executions and last snapshot

Examples:
  tradebrain journal sessions
  tradebrain journal executions <session-id>
  tradebrain journal show <session-id>`,
}

var journalSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE:  runJournalSessions,
}

var journalExecutionsCmd = &cobra.Command{
	Use:   "executions <session-id>",
	Short: "List the executions of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalExecutions,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session as an Org-mode entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionsCmd)
	journalCmd.AddCommand(journalExecutionsCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (defaults to the config's db_path)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		path = cfg.Journal.DBPath
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalSessions(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListSessions()
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tINSTRUMENT\tSTARTED\tRISK\tEXECUTIONS")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\n", r.SessionID, r.Instrument, r.Started.Local().Format(time.DateTime), r.RiskPerTrade, r.Executions)
	}
	return tw.Flush()
}

func runJournalExecutions(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListExecutions(args[0])
	if err != nil {
		return fmt.Errorf("query executions: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatExecutionsOrg(recs))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	sessionID := args[0]
	s, err := j.GetSession(sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	execs, err := j.ListExecutions(sessionID)
	if err != nil {
		return fmt.Errorf("query executions: %w", err)
	}

	out, err := journal.FormatSessionOrg(s, execs)
	if err != nil {
		return fmt.Errorf("format session: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	snap, err := j.LatestSnapshot(sessionID)
	if err != nil {
		// a session with no accepted commands has no snapshot
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatSnapshotOrg(snap))
	return nil
}
