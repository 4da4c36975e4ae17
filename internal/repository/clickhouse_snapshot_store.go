package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/domain/repository"
)

const insertChunk = 2000

// ErrIncompleteSnapshot reports a stored scan whose rows do not match its header.
var ErrIncompleteSnapshot = errors.New("incomplete scan snapshot")

// ClickHouseSnapshotStore keeps scan history in two tables: <db>.scans holds one
// header row per scan and <db>.scan_rows holds one row per instrument.
type ClickHouseSnapshotStore struct {
	db       *sql.DB
	database string
}

// NewClickHouseSnapshotStore creates ClickHouse storage.
func NewClickHouseSnapshotStore(db *sql.DB, database string) *ClickHouseSnapshotStore {
	return &ClickHouseSnapshotStore{db: db, database: database}
}

var _ repository.SnapshotStorage = (*ClickHouseSnapshotStore)(nil)

func (s *ClickHouseSnapshotStore) scans() string { return s.database + ".scans" }
func (s *ClickHouseSnapshotStore) rows() string  { return s.database + ".scan_rows" }

// Schema returns the idempotent DDL for both tables.
func (s *ClickHouseSnapshotStore) Schema() []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	scan_id String,
	created_at DateTime64(3, 'UTC'),
	screener LowCardinality(String),
	time_interval LowCardinality(String),
	preset String,
	duration String,
	columns String,
	header_mode UInt8,
	row_count UInt32
) ENGINE = MergeTree
ORDER BY (created_at, scan_id)`, s.scans()),
		fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS header_mode UInt8 AFTER columns", s.scans()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	scan_id String,
	created_at DateTime64(3, 'UTC'),
	screener LowCardinality(String),
	position UInt32,
	symbol String,
	row_values String
) ENGINE = MergeTree
PARTITION BY toYYYYMM(created_at)
ORDER BY (scan_id, position)`, s.rows()),
	}
}

// Store inserts rows in multi-row VALUES chunks and the header row last, so a
// scan is only listed once all of its rows are written.
func (s *ClickHouseSnapshotStore) Store(ctx context.Context, res *models.ScanResult) error {
	header, rows, err := snapshotRecords(res)
	if err != nil {
		return err
	}

	for start := 0; start < len(rows); start += insertChunk {
		end := start + insertChunk
		if end > len(rows) {
			end = len(rows)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*6)
		for _, r := range rows[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args, header.ID, header.CreatedAt, header.Screener, r.Position, r.Symbol, r.Values)
		}
		q := fmt.Sprintf("INSERT INTO %s (scan_id, created_at, screener, position, symbol, row_values) VALUES %s", s.rows(), strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert scan rows %s: %w", res.ID, err)
		}
	}

	q := fmt.Sprintf("INSERT INTO %s (scan_id, created_at, screener, time_interval, preset, duration, columns, header_mode, row_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", s.scans())
	if _, err := s.db.ExecContext(ctx, q,
		header.ID, header.CreatedAt, header.Screener, header.Interval,
		header.Preset, header.Duration, header.Columns, header.Mode, header.RowCount,
	); err != nil {
		return fmt.Errorf("insert scan %s: %w", res.ID, err)
	}
	return nil
}

func (s *ClickHouseSnapshotStore) Get(ctx context.Context, id string) (*models.ScanResult, error) {
	var h scanHeader
	q := fmt.Sprintf("SELECT scan_id, created_at, screener, time_interval, preset, duration, columns, header_mode, row_count FROM %s WHERE scan_id = ? LIMIT 1", s.scans())
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&h.ID, &h.CreatedAt, &h.Screener, &h.Interval, &h.Preset, &h.Duration, &h.Columns, &h.Mode, &h.RowCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query scan %s: %w", id, err)
	}

	q = fmt.Sprintf("SELECT position, symbol, row_values FROM %s WHERE scan_id = ? ORDER BY position", s.rows())
	rs, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("query scan rows %s: %w", id, err)
	}
	defer rs.Close()

	var rows []scanRowRecord
	for rs.Next() {
		var r scanRowRecord
		if err := rs.Scan(&r.Position, &r.Symbol, &r.Values); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	return assembleSnapshot(h, rows)
}

func (s *ClickHouseSnapshotStore) List(ctx context.Context, since time.Time, limit int) ([]models.ScanSummary, error) {
	q := fmt.Sprintf("SELECT scan_id, created_at, screener, time_interval, preset, row_count FROM %s WHERE created_at >= ? ORDER BY created_at DESC LIMIT ?", s.scans())
	rs, err := s.db.QueryContext(ctx, q, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rs.Close()

	out := make([]models.ScanSummary, 0, limit)
	for rs.Next() {
		var (
			sum      models.ScanSummary
			screener string
			interval string
			count    uint32
		)
		if err := rs.Scan(&sum.ID, &sum.CreatedAt, &screener, &interval, &sum.Preset, &count); err != nil {
			return nil, err
		}
		sum.Screener = models.ScreenerKind(screener)
		sum.Interval = models.TimeInterval(interval)
		sum.Rows = int(count)
		out = append(out, sum)
	}
	return out, rs.Err()
}

func (s *ClickHouseSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSnapshotStore) Close() error {
	return nil // pool owned by pkg/clickhouse
}

type scanHeader struct {
	ID        string
	CreatedAt time.Time
	Screener  string
	Interval  string
	Preset    string
	Duration  string
	Columns   string
	Mode      uint8
	RowCount  uint32
}

type scanRowRecord struct {
	Position uint32
	Symbol   string
	Values   string
}

// snapshotRecords flattens a result into the header and per-instrument records.
// Values exclude the leading symbol column, which has its own column.
func snapshotRecords(res *models.ScanResult) (scanHeader, []scanRowRecord, error) {
	if res == nil || res.Table == nil {
		return scanHeader{}, nil, fmt.Errorf("empty scan result")
	}
	cols, err := json.Marshal(res.Table.Columns)
	if err != nil {
		return scanHeader{}, nil, fmt.Errorf("encode columns: %w", err)
	}

	h := scanHeader{
		ID:        res.ID,
		CreatedAt: res.CreatedAt.UTC(),
		Screener:  string(res.Screener),
		Interval:  string(res.Interval),
		Preset:    res.Preset,
		Duration:  res.Duration,
		Columns:   string(cols),
		Mode:      uint8(res.Table.Mode()),
	}

	rows := make([]scanRowRecord, 0, res.Table.Len())
	for i, row := range res.Table.Rows {
		if len(row) == 0 {
			continue
		}
		symbol, _ := row[0].(string)
		vals, err := json.Marshal(row[1:])
		if err != nil {
			return scanHeader{}, nil, fmt.Errorf("encode row %d: %w", i, err)
		}
		rows = append(rows, scanRowRecord{Position: uint32(i), Symbol: symbol, Values: string(vals)})
	}
	h.RowCount = uint32(len(rows))
	return h, rows, nil
}

// assembleSnapshot rebuilds a result; a row count differing from the header is an error.
func assembleSnapshot(h scanHeader, rows []scanRowRecord) (*models.ScanResult, error) {
	if len(rows) != int(h.RowCount) {
		return nil, fmt.Errorf("scan %s: %w: have %d of %d rows", h.ID, ErrIncompleteSnapshot, len(rows), h.RowCount)
	}
	var cols []models.Column
	if err := json.Unmarshal([]byte(h.Columns), &cols); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}

	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		var vals []any
		if err := json.Unmarshal([]byte(r.Values), &vals); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", r.Position, err)
		}
		data = append(data, append([]any{r.Symbol}, vals...))
	}

	table := models.NewResultTable(cols, data, models.TimeInterval(h.Interval))
	table.SetMode(models.HeaderMode(h.Mode))
	return &models.ScanResult{
		ID:        h.ID,
		Screener:  models.ScreenerKind(h.Screener),
		Interval:  models.TimeInterval(h.Interval),
		Preset:    h.Preset,
		CreatedAt: h.CreatedAt,
		Duration:  h.Duration,
		Headers:   table.Headers(),
		Table:     table,
	}, nil
}
