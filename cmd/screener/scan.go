package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/screener"
	"FinScreen/internal/service/tradingview"
	"FinScreen/internal/usecase"
	pkghttp "FinScreen/pkg/http"
	"FinScreen/pkg/logger"
	"FinScreen/pkg/metrics"
	"FinScreen/pkg/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type scanFlags struct {
	kind         string
	interval     string
	markets      string
	countries    string
	exchanges    string
	symbolTypes  string
	regions      string
	search       string
	sort         string
	desc         bool
	rng          string
	beautify     bool
	technical    bool
	printRequest bool
	output       string
}

func newScanCmd(g *globalFlags) *cobra.Command {
	f := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one scan and print the result table",
		Example: `  screener scan --type stock --market america --sort "Market Capitalization" --desc --range 0:20
  screener scan --type crypto --beautify --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, g, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.kind, "type", "stock", "screener: stock, forex or crypto")
	fl.StringVar(&f.interval, "interval", "1D", "time interval: 1 5 15 30 60 120 240 1D 1W")
	fl.StringVar(&f.markets, "market", "", "comma-separated markets (stock only)")
	fl.StringVar(&f.countries, "country", "", "comma-separated countries (stock only)")
	fl.StringVar(&f.exchanges, "exchange", "", "comma-separated exchanges (stock only)")
	fl.StringVar(&f.symbolTypes, "symbol-type", "", "comma-separated symbol types (stock only)")
	fl.StringVar(&f.regions, "region", "", "comma-separated regions (forex only)")
	fl.StringVar(&f.search, "search", "", "symbol or name search text")
	fl.StringVar(&f.sort, "sort", "", "field label or key to sort by")
	fl.BoolVar(&f.desc, "desc", false, "sort descending")
	fl.StringVar(&f.rng, "range", "0:150", "row window from:to")
	fl.BoolVar(&f.beautify, "beautify", false, "format values for display")
	fl.BoolVar(&f.technical, "technical", false, "print wire keys above labels")
	fl.BoolVar(&f.printRequest, "print-request", false, "print the request URL and payload before sending")
	fl.StringVar(&f.output, "output", "table", "output format: table or json")
	return cmd
}

func (f *scanFlags) request() (*models.ScanRequest, error) {
	from, to, err := util.ParseRange(f.rng)
	if err != nil {
		return nil, err
	}
	req := &models.ScanRequest{
		Screener:    f.kind,
		Interval:    f.interval,
		Markets:     util.SplitList(f.markets),
		Countries:   util.SplitList(f.countries),
		Exchanges:   util.SplitList(f.exchanges),
		SymbolTypes: util.SplitList(f.symbolTypes),
		Regions:     util.SplitList(f.regions),
		Search:      f.search,
		SortBy:      f.sort,
		RangeFrom:   from,
		RangeTo:     to,
		Beautify:    f.beautify,
		Technical:   f.technical,
	}
	if f.sort != "" {
		req.SortOrder = "asc"
		if f.desc {
			req.SortOrder = "desc"
		}
	}
	return req, nil
}

func runScan(cmd *cobra.Command, g *globalFlags, f *scanFlags) error {
	if f.output != "table" && f.output != "json" {
		return fmt.Errorf("unknown output %q: want table or json", f.output)
	}
	timeout, err := time.ParseDuration(g.timeout)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	log, err := logger.New(&logger.Config{Level: g.logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		return err
	}

	req, err := f.request()
	if err != nil {
		return err
	}
	if err := pkghttp.ValidateStruct(cmd.Context(), req); err != nil {
		return err
	}

	runner := usecase.NewScanRunner(
		[]screener.Option{
			screener.WithTransport(tradingview.NewClient(tradingview.Config{})),
			screener.WithBaseURL(g.baseURL),
			screener.WithTimeout(timeout),
			screener.WithOutput(cmd.OutOrStdout()),
		},
		nil, nil,
		metrics.NewWith(prometheus.NewRegistry()),
		log,
	)

	var getOpts []screener.GetOption
	if f.printRequest {
		getOpts = append(getOpts, screener.WithPrintRequest())
	}
	res, err := runner.Run(cmd.Context(), req, getOpts...)
	if err != nil {
		return err
	}

	if f.output == "json" {
		return writeJSON(cmd.OutOrStdout(), res.Table)
	}
	return writeTable(cmd.OutOrStdout(), res.Table)
}

func writeJSON(w io.Writer, t *models.ResultTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Headers [][]string `json:"headers"`
		Rows    [][]any    `json:"rows"`
	}{t.HeaderRows(), t.Rows})
}

func writeTable(w io.Writer, t *models.ResultTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, h := range t.HeaderRows() {
		fmt.Fprintln(tw, strings.Join(h, "\t"))
	}
	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = cell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	fmt.Fprintf(tw, "(%d rows)\n", t.Len())
	return tw.Flush()
}

func cell(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
