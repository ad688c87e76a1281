package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradenexus/internal/domain"
	"tradenexus/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// DefaultBatchSize bounds one insert statement during a replace import.
	DefaultBatchSize = 1000
	// DefaultPageSize bounds one fetch during a full-history scan.
	DefaultPageSize = 1000
)

// Repository implements ports.TradeLogRepository using SQLite, with one
// table per instrument symbol.
type Repository struct {
	db        *sql.DB
	logger    ports.Logger
	batchSize int
	pageSize  int
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath    string
	Logger    ports.Logger
	BatchSize int // <= 0 falls back to DefaultBatchSize
	PageSize  int // <= 0 falls back to DefaultPageSize
}

// NewRepository opens (or creates) the database file and ensures the
// per-symbol trade-log schema exists.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository: %w", ports.ErrConfigurationError)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/tradenexus.db" // Default path
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency between import writes and dashboard reads.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo, err := NewWithDB(db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Trade log database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// NewWithDB wraps an already open database handle. The caller owns schema
// setup and the handle's lifecycle settings; used by tests and alternate
// wiring.
func NewWithDB(db *sql.DB, cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository: %w", ports.ErrConfigurationError)
	}
	if db == nil {
		return nil, fmt.Errorf("database handle is required: %w", ports.ErrConfigurationError)
	}

	r := &Repository{db: db, logger: cfg.Logger, batchSize: cfg.BatchSize, pageSize: cfg.PageSize}
	if r.batchSize <= 0 {
		r.batchSize = DefaultBatchSize
	}
	if r.pageSize <= 0 {
		r.pageSize = DefaultPageSize
	}
	return r, nil
}

// initializeSchema creates the per-symbol trade-log tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	var sb strings.Builder
	for _, symbol := range domain.AllSymbols() {
		table := symbol.TableName()
		sb.WriteString(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_date TEXT NOT NULL,
		pnl REAL NOT NULL,
		order_size REAL NOT NULL,
		price REAL NOT NULL,
		balance REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_%[1]s_trade_date ON %[1]s (trade_date);
	`, table))
	}

	if _, err := r.db.ExecContext(ctx, sb.String()); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing trade log database connection")
		return r.db.Close()
	}
	return nil
}

// tableFor resolves a symbol to its table, rejecting anything outside the
// supported set before it can reach a SQL string.
func tableFor(symbol domain.Symbol) (string, error) {
	table := symbol.TableName()
	if table == "" {
		return "", fmt.Errorf("symbol %q has no trade log table: %w", symbol, ports.ErrInvalidRequest)
	}
	return table, nil
}

// ReplaceAll deletes the symbol's existing records and inserts the new set
// in insertion-order-preserving batches.
//
// The two phases are not transactional: a delete failure is logged but does
// not abort the inserts, and a failed insert batch aborts the remaining
// batches without rolling back the committed ones. Re-running the full
// import is the recovery procedure for a partial replace.
func (r *Repository) ReplaceAll(ctx context.Context, symbol domain.Symbol, records []*domain.TradeLog) error {
	table, err := tableFor(symbol)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		r.logger.Error(ctx, err, "Failed to clear existing trade logs, continuing with insert",
			map[string]interface{}{"symbol": symbol})
	}

	batches := (len(records) + r.batchSize - 1) / r.batchSize
	for start := 0; start < len(records); start += r.batchSize {
		end := start + r.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := r.insertBatch(ctx, table, records[start:end]); err != nil {
			return fmt.Errorf("failed to insert batch %d/%d for symbol %s: %w",
				start/r.batchSize+1, batches, symbol, err)
		}
		r.logger.Debug(ctx, "Inserted trade log batch", map[string]interface{}{
			"symbol": symbol, "batch": start/r.batchSize + 1, "batches": batches, "rows": end - start})
	}

	r.logger.Info(ctx, "Trade logs replaced", map[string]interface{}{"symbol": symbol, "rows": len(records)})
	return nil
}

// insertBatch writes one bounded multi-row insert.
func (r *Repository) insertBatch(ctx context.Context, table string, batch []*domain.TradeLog) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO " + table + " (trade_date, pnl, order_size, price, balance) VALUES ")

	args := make([]interface{}, 0, len(batch)*5)
	for i, rec := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args,
			rec.TradeDate.Format(domain.TradeDateLayout),
			rec.PNL, rec.OrderSize, rec.Price, rec.BalanceBefore)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrInsertFailed, err)
	}
	return nil
}

// QueryRange retrieves all records with trade_date >= from, ordered by trade
// date and then insertion order.
func (r *Repository) QueryRange(ctx context.Context, symbol domain.Symbol, from time.Time) ([]*domain.TradeLog, error) {
	table, err := tableFor(symbol)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT id, trade_date, pnl, order_size, price, balance
	FROM %s
	WHERE trade_date >= ?
	ORDER BY trade_date ASC, id ASC`, table)

	rows, err := r.db.QueryContext(ctx, query, from.Format(domain.TradeDateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query trade log range for symbol %s: %w", symbol, err)
	}
	defer rows.Close()

	return collectTradeLogs(rows)
}

// QueryAll retrieves the symbol's full history ascending. Pages are fetched
// sequentially with a fixed size until a short page signals end-of-data; a
// page's existence is only known once the previous one came back full, so
// there is no speculative parallel pagination.
func (r *Repository) QueryAll(ctx context.Context, symbol domain.Symbol) ([]*domain.TradeLog, error) {
	table, err := tableFor(symbol)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT id, trade_date, pnl, order_size, price, balance
	FROM %s
	ORDER BY trade_date ASC, id ASC
	LIMIT ? OFFSET ?`, table)

	all := make([]*domain.TradeLog, 0, r.pageSize)
	for offset := 0; ; offset += r.pageSize {
		rows, err := r.db.QueryContext(ctx, query, r.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to query trade log page at offset %d for symbol %s: %w", offset, symbol, err)
		}
		page, err := collectTradeLogs(rows)
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade log page at offset %d for symbol %s: %w", offset, symbol, err)
		}

		all = append(all, page...)
		if len(page) < r.pageSize {
			return all, nil
		}
	}
}

// QueryLatestDate returns the most recent trade date for the symbol, or the
// zero time (with a nil error) when the symbol has no records.
func (r *Repository) QueryLatestDate(ctx context.Context, symbol domain.Symbol) (time.Time, error) {
	table, err := tableFor(symbol)
	if err != nil {
		return time.Time{}, err
	}

	query := fmt.Sprintf(`SELECT trade_date FROM %s ORDER BY trade_date DESC LIMIT 1`, table)

	var raw string
	if err := r.db.QueryRowContext(ctx, query).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to query latest trade date for symbol %s: %w", symbol, err)
	}

	latest, err := time.Parse(domain.TradeDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored trade date %q is not a valid date: %w", raw, err)
	}
	return latest, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTradeLog scans a row into a domain.TradeLog struct.
func scanTradeLog(s scanner) (*domain.TradeLog, error) {
	rec := &domain.TradeLog{}
	var rawDate string
	if err := s.Scan(&rec.ID, &rawDate, &rec.PNL, &rec.OrderSize, &rec.Price, &rec.BalanceBefore); err != nil {
		return nil, err
	}
	tradeDate, err := time.Parse(domain.TradeDateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("stored trade date %q is not a valid date: %w", rawDate, err)
	}
	rec.TradeDate = tradeDate
	return rec, nil
}

func collectTradeLogs(rows *sql.Rows) ([]*domain.TradeLog, error) {
	records := make([]*domain.TradeLog, 0)
	for rows.Next() {
		rec, err := scanTradeLog(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade log rows: %w", err)
	}
	return records, nil
}
