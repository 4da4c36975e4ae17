// Package screener builds TradingView scan requests and decodes their results.
//
// A screener is not safe for concurrent mutation; callers that share one across
// goroutines must synchronize themselves.
package screener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/domain/repository"
	"FinScreen/internal/service/tradingview"
	"FinScreen/pkg/logger"
)

const (
	DefaultMinRange = 0
	DefaultMaxRange = 150
	DefaultTimeout  = 30 * time.Second
	DefaultLang     = "en"
)

// Screener holds the request state shared by every variant.
type Screener struct {
	kind    models.ScreenerKind
	path    string
	baseURL string
	catalog *models.Catalog

	filters *FilterSet
	options map[string]interface{}
	misc    map[string]interface{}
	symbols interface{}
	sort    *Sort
	rng     [2]int
	markets []models.Market

	transport repository.Transport
	timeout   time.Duration
	log       *logger.Logger
	out       io.Writer
}

// Option configures a screener at construction.
type Option func(*Screener)

func WithTransport(t repository.Transport) Option { return func(s *Screener) { s.transport = t } }

func WithTimeout(d time.Duration) Option { return func(s *Screener) { s.timeout = d } }

func WithLogger(l *logger.Logger) Option { return func(s *Screener) { s.log = l } }

// WithBaseURL replaces the scheme and host of the scan endpoint.
func WithBaseURL(u string) Option {
	return func(s *Screener) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithOutput sets where WithPrintRequest writes.
func WithOutput(w io.Writer) Option { return func(s *Screener) { s.out = w } }

func newScreener(kind models.ScreenerKind, path string, catalog *models.Catalog, opts ...Option) *Screener {
	s := &Screener{
		kind:    kind,
		path:    path,
		baseURL: tradingview.DefaultBaseURL,
		catalog: catalog,
		filters: NewFilterSet(),
		options: map[string]interface{}{"lang": DefaultLang},
		misc:    make(map[string]interface{}),
		rng:     [2]int{DefaultMinRange, DefaultMaxRange},
		timeout: DefaultTimeout,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.transport == nil {
		s.transport = tradingview.NewClient(tradingview.Config{})
	}
	s.log = s.log.With(logger.String("screener", string(kind)))
	return s
}

func (s *Screener) Kind() models.ScreenerKind { return s.kind }

func (s *Screener) Catalog() *models.Catalog { return s.catalog }

// URL is the scan endpoint of this variant.
func (s *Screener) URL() string { return fmt.Sprintf("%s/%s/scan", s.baseURL, s.path) }

// SetRange sets the [from, to) row window.
func (s *Screener) SetRange(from, to int) error {
	if from < 0 {
		return newValidationError("range", from, "start must not be negative")
	}
	if to <= from {
		return newValidationError("range", to, "end must be greater than start %d", from)
	}
	s.rng = [2]int{from, to}
	return nil
}

func (s *Screener) Range() (int, int) { return s.rng[0], s.rng[1] }

func (s *Screener) SortBy(field models.Field, ascending bool) {
	order := SortDesc
	if ascending {
		order = SortAsc
	}
	s.sort = &Sort{SortBy: field.Key, SortOrder: order}
}

func (s *Screener) AddOption(key string, value interface{}) { s.options[key] = value }

// AddMisc sets a top-level payload entry. It overrides a named entry with the same key.
func (s *Screener) AddMisc(key string, value interface{}) { s.misc[key] = value }

// AddFilter merges a predicate; see FilterSet.Add.
func (s *Screener) AddFilter(field models.FilterField, op models.FilterOperator, values ...interface{}) error {
	return s.filters.Add(field, op, values...)
}

func (s *Screener) RemoveFilter(field models.FilterField) { s.filters.Remove(field) }

func (s *Screener) GetFilter(field models.FilterField) (models.FilterPredicate, bool) {
	return s.filters.Get(field)
}

// Filters returns the active predicates in insertion order.
func (s *Screener) Filters() []models.FilterPredicate { return s.filters.Predicates() }

// Search restricts results to symbols whose name or description matches text.
// A second call replaces the previous text.
func (s *Screener) Search(text string) error {
	if strings.TrimSpace(text) == "" {
		return newValidationError("search", text, "text must not be empty")
	}
	s.filters.Remove(models.FilterSearch)
	return s.filters.Add(models.FilterSearch, models.OpMatch, text)
}

// SetPrimaryListing keeps only primary listings when on.
func (s *Screener) SetPrimaryListing(on bool) {
	s.filters.Remove(models.FilterPrimary)
	if on {
		_ = s.filters.Add(models.FilterPrimary, models.OpEqual, true)
	}
}

// SetCurrentTradingDay keeps only symbols that traded in the current session when on.
func (s *Screener) SetCurrentTradingDay(on bool) {
	s.filters.Remove(models.FilterCurrentTradingDay)
	if on {
		_ = s.filters.Add(models.FilterCurrentTradingDay, models.OpEqual, true)
	}
}

// BuildPayload assembles the request body for the given column keys.
func (s *Screener) BuildPayload(columns []string) *Payload {
	symbols := s.symbols
	if symbols == nil {
		symbols = defaultSymbols()
	}
	var markets []string
	for _, m := range s.markets {
		markets = append(markets, string(m))
	}
	options := make(map[string]interface{}, len(s.options))
	for k, v := range s.options {
		options[k] = v
	}
	misc := make(map[string]interface{}, len(s.misc))
	for k, v := range s.misc {
		misc[k] = v
	}
	return &Payload{
		Filter:  s.filters.Wire(),
		Options: options,
		Symbols: symbols,
		Sort:    s.sort,
		Range:   s.rng,
		Columns: columns,
		Markets: markets,
		Misc:    misc,
	}
}

type getOptions struct {
	printRequest bool
}

// GetOption tunes a single Get call.
type GetOption func(*getOptions)

// WithPrintRequest writes the URL and payload to the screener output before sending.
func WithPrintRequest() GetOption { return func(o *getOptions) { o.printRequest = true } }

// Get plans the columns for interval, sends one request and maps the reply.
// Non-success replies and transport failures return *MalformedRequestError.
func (s *Screener) Get(ctx context.Context, interval models.TimeInterval, opts ...GetOption) (*models.ResultTable, error) {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}
	if interval == "" {
		interval = models.DefaultInterval
	}
	if !interval.Valid() {
		return nil, newValidationError("time interval", interval, "unknown interval")
	}

	plan := PlanColumns(s.catalog, interval)
	payload, err := s.BuildPayload(plan.Keys()).Encode()
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	url := s.URL()
	s.log.Debug("scan payload built",
		logger.String("url", url),
		logger.String("interval", interval.String()),
		logger.Int("columns", plan.Len()),
		logger.Int("filters", s.filters.Len()),
	)

	if o.printRequest {
		fmt.Fprintf(s.out, "Request: %s\nPayload:\n%s\n", url, payload)
	}

	start := time.Now()
	resp, err := s.transport.Post(ctx, url, payload, s.timeout)
	if err != nil {
		merr := &MalformedRequestError{StatusCode: StatusUnknown, Body: err.Error(), URL: url, Payload: string(payload), Err: err}
		if errors.Is(err, repository.ErrTransportTimeout) {
			merr.StatusCode = StatusTimeout
			merr.Body = fmt.Sprintf("Request timed out after %d seconds", int(s.timeout.Seconds()))
		}
		s.log.Debug("scan request failed", logger.Int("status", merr.StatusCode), logger.Error(err))
		return nil, merr
	}
	if !tradingview.StatusOK(resp.StatusCode) {
		s.log.Debug("scan rejected", logger.Int("status", resp.StatusCode))
		return nil, &MalformedRequestError{StatusCode: resp.StatusCode, Body: string(resp.Body), URL: url, Payload: string(payload)}
	}

	var decoded ScanResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, &MalformedRequestError{StatusCode: resp.StatusCode, Body: string(resp.Body), URL: url, Payload: string(payload), Err: err}
	}
	table, err := MapResult(&decoded, plan, interval)
	if err != nil {
		return nil, &MalformedRequestError{StatusCode: resp.StatusCode, Body: err.Error(), URL: url, Payload: string(payload), Err: err}
	}
	s.log.Debug("scan completed", logger.Int("rows", table.Len()), logger.Duration("elapsed_ms", time.Since(start)))
	return table, nil
}
