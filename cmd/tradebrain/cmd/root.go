package cmd

import (
	"github.com/rustyeddy/tradebrain/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradebrain",
	Short: "Position risk calculator for a single instrument",
	Long: `Tradebrain tracks buys and sells against one instrument and derives
what a trader needs to manage the position:

  - Risk-based position sizing from a risk line
  - Average entry price and break-even adjusted price (BERT)
  - Realized and unrealized profit for the round trip
  - How much of the position resting stops and targets protect

Commands are replayed from a CSV script; every accepted execution is
journaled to SQLite or CSV.`,
	SilenceUsage: true,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.LoadFromFile(cfgFile)
}
