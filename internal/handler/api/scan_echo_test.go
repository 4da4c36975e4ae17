package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"FinScreen/internal/repository"
	"FinScreen/internal/screener"
	"FinScreen/internal/service/tradingview"
	"FinScreen/internal/usecase"
	xhttp "FinScreen/pkg/http"
	"FinScreen/pkg/kv"
	"FinScreen/pkg/logger"
	"FinScreen/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scanner struct {
	srv    *httptest.Server
	calls  atomic.Int32
	status atomic.Int32
}

// newScanner serves two rows for whatever columns are requested.
func newScanner(t *testing.T) *scanner {
	t.Helper()
	s := &scanner{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		if code := s.status.Load(); code != 0 {
			w.WriteHeader(int(code))
			_, _ = w.Write([]byte("scanner unavailable"))
			return
		}
		var req struct {
			Columns []string `json:"columns"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resp := screener.ScanResponse{TotalCount: 2}
		for _, sym := range []string{"BINANCE:BTCUSDT", "COINBASE:ETHUSD"} {
			vals := make([]interface{}, len(req.Columns))
			for i := range vals {
				vals[i] = 42.0
			}
			resp.Data = append(resp.Data, screener.ScanRow{Symbol: sym, Values: vals})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func newTestAPI(t *testing.T, s *scanner) *echo.Echo {
	t.Helper()
	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	runner := usecase.NewScanRunner(
		[]screener.Option{
			screener.WithBaseURL(s.srv.URL),
			screener.WithTransport(tradingview.NewClient(tradingview.Config{})),
			screener.WithTimeout(5 * time.Second),
		},
		repository.NewKVSnapshotStore(store, time.Hour),
		repository.NopPublisher{},
		metrics.NewWith(prometheus.NewRegistry()),
		nil,
	)
	presets := usecase.NewPresetService(repository.NewKVPresetStore(store), runner)
	h := NewScanEchoHandler(nil, runner, presets)
	return xhttp.NewServer(h, logger.NewNop(), xhttp.WithMetrics(false, "")).Echo()
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestRunScanAndReadBack(t *testing.T) {
	s := newScanner(t)
	e := newTestAPI(t, s)

	rec, env := do(t, e, http.MethodPost, "/api/scans", `{"screener":"crypto","range_to":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusCreated, env.Status)

	var res struct {
		ID       string `json:"id"`
		Screener string `json:"screener"`
		Table    struct {
			Rows [][]interface{} `json:"rows"`
		} `json:"table"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "crypto", res.Screener)
	require.Len(t, res.Table.Rows, 2)
	assert.Equal(t, "BINANCE:BTCUSDT", res.Table.Rows[0][0])
	assert.EqualValues(t, 1, s.calls.Load())

	rec, env = do(t, e, http.MethodGet, "/api/scans/"+res.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), res.ID)

	rec, env = do(t, e, http.MethodGet, "/api/scans?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list xhttp.ListDataResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.EqualValues(t, 1, list.Total)
}

func TestRunScanErrors(t *testing.T) {
	s := newScanner(t)
	e := newTestAPI(t, s)

	rec, _ := do(t, e, http.MethodPost, "/api/scans", `{"screener":"bonds"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/scans", `{"screener":"forex","countries":["Germany"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_VALIDATION")
	assert.EqualValues(t, 0, s.calls.Load(), "rejected scans never reach the scanner")

	s.status.Store(http.StatusInternalServerError)
	rec, env := do(t, e, http.MethodPost, "/api/scans", `{"screener":"stock"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var appErrs []xhttp.AppError
	require.NoError(t, json.Unmarshal(env.Data, &appErrs))
	require.Len(t, appErrs, 1)
	assert.Equal(t, "ERR_UPSTREAM", appErrs[0].Code)
	assert.EqualValues(t, 500, appErrs[0].Params["status_code"])
	assert.Contains(t, appErrs[0].Params["url"], "/global/scan")
}

func TestGetScanNotFound(t *testing.T) {
	e := newTestAPI(t, newScanner(t))

	rec, _ := do(t, e, http.MethodGet, "/api/scans/8a3f5c2e-8a1b-4c4e-9d5b-0f3c2a1b4d5e", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/scans/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogEndpoint(t *testing.T) {
	e := newTestAPI(t, newScanner(t))

	rec, env := do(t, e, http.MethodGet, "/api/catalogs/forex", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body catalogResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "forex", string(body.Screener))
	assert.NotEmpty(t, body.Fields)

	rec, _ = do(t, e, http.MethodGet, "/api/catalogs/bonds", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPresetRoutes(t *testing.T) {
	s := newScanner(t)
	e := newTestAPI(t, s)

	rec, _ := do(t, e, http.MethodPut, "/api/presets/majors", `{"description":"top coins","scan":{"screener":"crypto","range_to":5}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = do(t, e, http.MethodPut, "/api/presets/broken", `{"scan":{"screener":"crypto","sectors":["Finance"]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, e, http.MethodGet, "/api/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list xhttp.ListDataResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.EqualValues(t, 1, list.Total)

	rec, env = do(t, e, http.MethodGet, "/api/presets/majors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "top coins")

	rec, env = do(t, e, http.MethodPost, "/api/presets/majors/run", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"preset":"majors"`)

	rec, _ = do(t, e, http.MethodDelete, "/api/presets/majors", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/presets/majors", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/api/presets/majors/run", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	e := newTestAPI(t, newScanner(t))
	rec, env := do(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "ok")
}
