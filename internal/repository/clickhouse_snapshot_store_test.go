package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"FinScreen/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDriver logs every Exec and fails those whose query contains failOn.
type recordingDriver struct {
	mu      sync.Mutex
	queries []string
	failOn  string
}

func (d *recordingDriver) Open(string) (driver.Conn, error) { return &recordingConn{d: d}, nil }

func (d *recordingDriver) executed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.queries...)
}

type recordingConn struct{ d *recordingDriver }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { return nil, errors.New("tx not supported") }

func (c *recordingConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	if c.d.failOn != "" && strings.Contains(query, c.d.failOn) {
		return nil, errors.New("insert rejected")
	}
	c.d.queries = append(c.d.queries, query)
	return driver.RowsAffected(1), nil
}

var driverSeq atomic.Int64

// openRecording registers a fresh driver instance under a unique name.
func openRecording(t *testing.T, failOn string) (*sql.DB, *recordingDriver) {
	t.Helper()
	d := &recordingDriver{failOn: failOn}
	name := fmt.Sprintf("recording-%d", driverSeq.Add(1))
	sql.Register(name, d)
	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, d
}

func TestClickHouseStoreWritesHeaderAfterRows(t *testing.T) {
	db, d := openRecording(t, "")
	s := NewClickHouseSnapshotStore(db, "finscreen")

	require.NoError(t, s.Store(context.Background(), sampleResult("id-1", time.Now())))

	q := d.executed()
	require.Len(t, q, 2)
	assert.Contains(t, q[0], "finscreen.scan_rows")
	assert.Contains(t, q[1], "finscreen.scans ")
	assert.Contains(t, q[1], "header_mode")
}

func TestClickHouseStoreSkipsHeaderWhenRowsFail(t *testing.T) {
	db, d := openRecording(t, "scan_rows")
	s := NewClickHouseSnapshotStore(db, "finscreen")

	err := s.Store(context.Background(), sampleResult("id-2", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert scan rows id-2")
	assert.Empty(t, d.executed(), "no header row for a partial scan")
}

func TestSnapshotKeepsTechnicalHeaders(t *testing.T) {
	res := sampleResult("id-3", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	res.Table.SetTechnicalColumns(true)
	res.Headers = res.Table.Headers()

	header, rows, err := snapshotRecords(res)
	require.NoError(t, err)
	got, err := assembleSnapshot(header, rows)
	require.NoError(t, err)
	assert.Equal(t, models.HeaderTechnicalOnly, got.Table.Mode())
	assert.Equal(t, []string{"symbol", "name", "close"}, got.Headers)
	assert.Equal(t, res.Headers, got.Headers)
}

func TestAssembleSnapshotRejectsMissingRows(t *testing.T) {
	header, rows, err := snapshotRecords(sampleResult("id-4", time.Now()))
	require.NoError(t, err)

	_, err = assembleSnapshot(header, rows[:1])
	assert.ErrorIs(t, err, ErrIncompleteSnapshot)
}
