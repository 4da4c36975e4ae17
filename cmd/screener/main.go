// Command screener runs TradingView scans from the terminal.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	baseURL  string
	timeout  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:          "screener",
		Short:        "Query the TradingView stock, forex and crypto screeners",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.baseURL, "base-url", "https://scanner.tradingview.com", "scanner endpoint")
	root.PersistentFlags().StringVar(&g.timeout, "timeout", "30s", "request timeout")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newScanCmd(g), newFieldsCmd())
	return root
}
