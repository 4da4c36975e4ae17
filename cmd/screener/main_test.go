package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FinScreen/internal/screener"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scannerServer(t *testing.T, bodies *[]map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*bodies = append(*bodies, body)

		cols := body["columns"].([]interface{})
		vals := make([]interface{}, len(cols))
		for i := range vals {
			vals[i] = 1.5
		}
		_ = json.NewEncoder(w).Encode(screener.ScanResponse{
			TotalCount: 1,
			Data:       []screener.ScanRow{{Symbol: "NASDAQ:AAPL", Values: vals}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanTable(t *testing.T) {
	var bodies []map[string]interface{}
	srv := scannerServer(t, &bodies)

	out, err := execute(t, "scan", "--base-url", srv.URL,
		"--market", "america", "--sort", "Market Capitalization", "--desc", "--range", "10:20")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Symbol")
	assert.Contains(t, out, "NASDAQ:AAPL")
	assert.Contains(t, out, "(1 rows)")

	require.Len(t, bodies, 1)
	assert.Equal(t, []interface{}{10.0, 20.0}, bodies[0]["range"])
	assert.Equal(t, map[string]interface{}{"sortBy": "market_cap_basic", "sortOrder": "desc"}, bodies[0]["sort"])
}

func TestScanJSONWithPrintRequest(t *testing.T) {
	var bodies []map[string]interface{}
	srv := scannerServer(t, &bodies)

	out, err := execute(t, "scan", "--base-url", srv.URL, "--type", "crypto", "--print-request", "--output", "json")
	require.NoError(t, err, out)

	assert.True(t, strings.HasPrefix(out, "Request: "+srv.URL+"/crypto/scan"), out)
	assert.Contains(t, out, `"headers"`)
	assert.Contains(t, out, "NASDAQ:AAPL")
}

func TestScanRejectsBadInput(t *testing.T) {
	var bodies []map[string]interface{}
	srv := scannerServer(t, &bodies)

	for name, args := range map[string][]string{
		"type":          {"--type", "bonds"},
		"range":         {"--range", "20:10"},
		"output":        {"--output", "xml"},
		"forex markets": {"--type", "forex", "--market", "america"},
		"market":        {"--market", "atlantis"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, append([]string{"scan", "--base-url", srv.URL}, args...)...)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, bodies, "invalid scans are never sent")
}

func TestFields(t *testing.T) {
	out, err := execute(t, "fields", "--type", "forex")
	require.NoError(t, err)
	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "name")

	_, err = execute(t, "fields", "--type", "bonds")
	assert.Error(t, err)
}
