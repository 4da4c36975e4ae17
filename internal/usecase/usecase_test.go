package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"FinScreen/internal/domain/models"
	domrepo "FinScreen/internal/domain/repository"
	"FinScreen/internal/repository"
	"FinScreen/internal/screener"
	pkgkafka "FinScreen/pkg/kafka"
	"FinScreen/pkg/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu     sync.Mutex
	calls  int
	bodies [][]byte
	err    error
	status int
}

func (f *fakeTransport) Post(_ context.Context, _ string, body []byte, _ time.Duration) (*domrepo.TransportResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.bodies = append(f.bodies, append([]byte(nil), body...))
	if f.err != nil {
		return nil, f.err
	}
	if f.status != 0 {
		return &domrepo.TransportResponse{StatusCode: f.status, Body: []byte("upstream says no")}, nil
	}

	var req struct {
		Columns []string `json:"columns"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	resp := screener.ScanResponse{TotalCount: 2}
	for _, sym := range []string{"NASDAQ:AAPL", "TSX:SHOP"} {
		vals := make([]interface{}, len(req.Columns))
		for i, c := range req.Columns {
			if c == "name" {
				vals[i] = strings.SplitN(sym, ":", 2)[1]
				continue
			}
			vals[i] = 1234567.0
		}
		resp.Data = append(resp.Data, screener.ScanRow{Symbol: sym, Values: vals})
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return &domrepo.TransportResponse{StatusCode: 200, Body: b}, nil
}

func (f *fakeTransport) lastPayload(t *testing.T) map[string]interface{} {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.bodies)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(f.bodies[len(f.bodies)-1], &out))
	return out
}

type fakeMetrics struct {
	mu     sync.Mutex
	scans  map[string]int
	errors map[string]int
	rows   int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{scans: map[string]int{}, errors: map[string]int{}}
}

func (m *fakeMetrics) RecordScan(screener, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans[screener+"/"+status]++
}

func (m *fakeMetrics) RecordRows(_ string, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows += rows
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

type capturePublisher struct {
	mu   sync.Mutex
	sent []*models.ScanResult
	err  error
}

func (p *capturePublisher) Publish(_ context.Context, res *models.ScanResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, res)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

type fixture struct {
	transport *fakeTransport
	metrics   *fakeMetrics
	publisher *capturePublisher
	storage   *repository.KVSnapshotStore
	runner    *ScanRunner
	presets   *PresetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{
		transport: &fakeTransport{},
		metrics:   newFakeMetrics(),
		publisher: &capturePublisher{},
		storage:   repository.NewKVSnapshotStore(store, time.Hour),
	}
	f.runner = NewScanRunner(
		[]screener.Option{screener.WithTransport(f.transport)},
		f.storage, f.publisher, f.metrics, nil,
	)
	f.runner.newID = func() string { return "scan-1" }
	f.presets = NewPresetService(repository.NewKVPresetStore(store), f.runner)
	return f
}

func TestRunStockScanStoresAndPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.runner.Run(ctx, &models.ScanRequest{
		Screener:  "stock",
		Interval:  "1D",
		Markets:   []string{"america", "canada"},
		Countries: []string{"Canada"},
		Search:    "sh",
		Filters: []models.FilterSpec{
			{Field: "Price", Operator: "greater", Values: []any{10.0}},
		},
		SortBy:    "Change %",
		SortOrder: "asc",
		RangeTo:   20,
		Beautify:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "scan-1", res.ID)
	assert.Equal(t, models.ScreenerStock, res.Screener)
	assert.Equal(t, 2, res.Table.Len())
	assert.Equal(t, "Symbol", res.Headers[0])

	price := res.Table.IndexByLabel("Price")
	require.GreaterOrEqual(t, price, 0)
	assert.Equal(t, 1234567.0, res.Table.Rows[0][price])
	volume := res.Table.IndexByLabel("Volume")
	require.GreaterOrEqual(t, volume, 0)
	assert.Equal(t, "1.235M", res.Table.Rows[0][volume])

	p := f.transport.lastPayload(t)
	assert.Equal(t, []interface{}{"america", "canada"}, p["markets"])
	assert.Equal(t, []interface{}{0.0, 20.0}, p["range"])
	assert.Equal(t, map[string]interface{}{"sortBy": "change", "sortOrder": "asc"}, p["sort"])
	assert.Len(t, p["filter"], 3)

	stored, err := f.runner.GetScan(ctx, "scan-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Table.Len())
	require.Len(t, f.publisher.sent, 1)
	assert.Equal(t, 1, f.metrics.scans["stock/ok"])
	assert.Equal(t, 2, f.metrics.rows)
}

func TestRunTechnicalHeaders(t *testing.T) {
	f := newFixture(t)
	res, err := f.runner.Run(context.Background(), &models.ScanRequest{Screener: "crypto", Technical: true})
	require.NoError(t, err)
	assert.Equal(t, "symbol", res.Headers[0])
	assert.Contains(t, res.Headers, "name")
}

func TestRunRejectsInvalidWithoutNetwork(t *testing.T) {
	for name, req := range map[string]models.ScanRequest{
		"unknown country":    {Screener: "stock", Countries: []string{"Atlantis"}},
		"forex market":       {Screener: "stock", Markets: []string{"forex"}},
		"stock-only option":  {Screener: "crypto", Sectors: []string{"Finance"}},
		"regions on stock":   {Screener: "stock", Regions: []string{"Europe"}},
		"unknown field":      {Screener: "forex", Filters: []models.FilterSpec{{Field: "Nope", Operator: "equal", Values: []any{1}}}},
		"bad operator":       {Screener: "stock", Filters: []models.FilterSpec{{Field: "Price", Operator: "about", Values: []any{1}}}},
		"unknown sort field": {Screener: "stock", SortBy: "Nope"},
		"bad interval":       {Screener: "stock", Interval: "2D"},
		"bad range":          {Screener: "stock", RangeFrom: 50, RangeTo: 10},
		"bad screener":       {Screener: "bonds"},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			req := req
			_, err := f.runner.Run(context.Background(), &req)

			var verr *screener.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 0, f.transport.calls)
			assert.Equal(t, StatusInvalid, FailureStatus(err))
		})
	}
}

func TestRunUpstreamFailures(t *testing.T) {
	f := newFixture(t)
	f.transport.status = 500

	_, err := f.runner.Run(context.Background(), &models.ScanRequest{Screener: "stock"})
	var merr *screener.MalformedRequestError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 500, merr.StatusCode)
	assert.Equal(t, 1, f.metrics.scans["stock/upstream_error"])

	f.transport.status = 0
	f.transport.err = domrepo.ErrTransportTimeout
	_, err = f.runner.Run(context.Background(), &models.ScanRequest{})
	assert.Equal(t, StatusTimeout, FailureStatus(err))
	assert.Equal(t, 1, f.metrics.scans["stock/timeout"])
	assert.Empty(t, f.publisher.sent)
}

func TestPublishFailureDoesNotFailScan(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	res, err := f.runner.Run(context.Background(), &models.ScanRequest{Screener: "forex"})
	require.NoError(t, err)
	assert.Equal(t, models.ScreenerForex, res.Screener)
	assert.Equal(t, 1, f.metrics.errors["publish"])
}

func TestGetScanWithoutStorage(t *testing.T) {
	r := NewScanRunner(nil, nil, nil, newFakeMetrics(), nil)
	_, err := r.GetScan(context.Background(), "x")
	assert.ErrorIs(t, err, domrepo.ErrNotFound)

	list, err := r.ListScans(context.Background(), time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPresetLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.presets.Save(ctx, "bad", "", models.ScanRequest{Screener: "stock", Countries: []string{"Atlantis"}})
	var verr *screener.ValidationError
	require.ErrorAs(t, err, &verr)

	p, err := f.presets.Save(ctx, "canada", "Canadian listings", models.ScanRequest{
		Screener: "stock", Countries: []string{"Canada"}, RangeTo: 10,
	})
	require.NoError(t, err)
	assert.False(t, p.UpdatedAt.IsZero())
	assert.Equal(t, 0, f.transport.calls, "saving never scans")

	res, err := f.presets.Run(ctx, "canada")
	require.NoError(t, err)
	assert.Equal(t, "canada", res.Preset)
	assert.Equal(t, []interface{}{0.0, 10.0}, f.transport.lastPayload(t)["range"])

	list, err := f.presets.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.presets.Delete(ctx, "canada"))
	_, err = f.presets.Run(ctx, "canada")
	assert.ErrorIs(t, err, domrepo.ErrNotFound)
}

func TestKafkaScanHandler(t *testing.T) {
	f := newFixture(t)
	h := NewKafkaScanHandler("scan.requests", f.runner, f.metrics, nil)
	assert.Equal(t, "scan.requests", h.Topic())

	ctx := pkgkafka.WithRequestID(context.Background(), "req-1")
	require.NoError(t, h.Handle(ctx, []byte(`{"screener":"crypto","range_to":5}`)))
	require.Len(t, f.publisher.sent, 1)
	assert.Equal(t, models.ScreenerCrypto, f.publisher.sent[0].Screener)
	assert.Equal(t, []interface{}{0.0, 5.0}, f.transport.lastPayload(t)["range"])

	err := h.Handle(ctx, []byte(`{not json`))
	assert.True(t, pkgkafka.IsPermanent(err))

	err = h.Handle(ctx, []byte(`{"screener":"bonds"}`))
	assert.True(t, pkgkafka.IsPermanent(err), "struct validation failure")

	err = h.Handle(ctx, []byte(`{"screener":"stock","countries":["Atlantis"]}`))
	assert.True(t, pkgkafka.IsPermanent(err), "enum validation failure")

	f.transport.err = errors.New("connection refused")
	err = h.Handle(ctx, []byte(`{"screener":"stock"}`))
	require.Error(t, err)
	assert.False(t, pkgkafka.IsPermanent(err), "network failures are retried")
}

func TestKafkaScanHandlerSkipsRedeliveredRequest(t *testing.T) {
	f := newFixture(t)
	locks := kv.NewMemoryStore()
	t.Cleanup(func() { _ = locks.Close() })
	h := NewKafkaScanHandler("scan.requests", f.runner, f.metrics, nil).WithDedup(locks, time.Minute)

	msg := []byte(`{"screener":"crypto"}`)
	ctx := pkgkafka.WithRequestID(context.Background(), "req-7")
	require.NoError(t, h.Handle(ctx, msg))
	require.NoError(t, h.Handle(ctx, msg))
	assert.Equal(t, 1, f.transport.calls)
	assert.Len(t, f.publisher.sent, 1)
	assert.Equal(t, 1, f.metrics.errors["consumer_duplicate"])

	require.NoError(t, h.Handle(pkgkafka.WithRequestID(context.Background(), "req-8"), msg))
	require.NoError(t, h.Handle(context.Background(), msg), "no request id")
	assert.Equal(t, 3, f.transport.calls)
}

func TestKafkaScanHandlerReleasesClaimOnFailure(t *testing.T) {
	f := newFixture(t)
	locks := kv.NewMemoryStore()
	t.Cleanup(func() { _ = locks.Close() })
	h := NewKafkaScanHandler("scan.requests", f.runner, f.metrics, nil).WithDedup(locks, time.Minute)

	ctx := pkgkafka.WithRequestID(context.Background(), "req-9")
	f.transport.err = errors.New("connection refused")
	require.Error(t, h.Handle(ctx, []byte(`{"screener":"stock"}`)))

	f.transport.err = nil
	require.NoError(t, h.Handle(ctx, []byte(`{"screener":"stock"}`)), "retry runs again")
	assert.Equal(t, 2, f.transport.calls)
	assert.Len(t, f.publisher.sent, 1)
}
