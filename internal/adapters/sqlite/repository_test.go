package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradenexus/internal/domain"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T, cfg Config) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tradenexus-test-*")
	require.NoError(t, err)

	cfg.DBPath = filepath.Join(tmpDir, "test.db")
	cfg.Logger = &mockLogger{}
	repo, err := NewRepository(cfg)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []*domain.TradeLog {
	return []*domain.TradeLog{
		{TradeDate: day(2022, 1, 24), PNL: 100, OrderSize: 2, Price: 2005.25, BalanceBefore: 1000},
		{TradeDate: day(2022, 1, 24), PNL: -40, OrderSize: 1, Price: 2010, BalanceBefore: 1100},
		{TradeDate: day(2022, 2, 1), PNL: 15.5, OrderSize: 1, Price: 1998, BalanceBefore: 1060},
	}
}

func TestReplaceAllAndQueryAll_RoundTrip(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{})
	defer cleanup()
	ctx := context.Background()

	records := sampleRecords()
	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMES, records))

	got, err := repo.QueryAll(ctx, domain.SymbolMES)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	for i, want := range records {
		assert.True(t, got[i].TradeDate.Equal(want.TradeDate), "record %d date", i)
		assert.Equal(t, want.PNL, got[i].PNL, "record %d pnl", i)
		assert.Equal(t, want.OrderSize, got[i].OrderSize, "record %d order size", i)
		assert.Equal(t, want.Price, got[i].Price, "record %d price", i)
		assert.Equal(t, want.BalanceBefore, got[i].BalanceBefore, "record %d balance", i)
	}

	// Same-date records keep their insertion order.
	assert.Equal(t, 100.0, got[0].PNL)
	assert.Equal(t, -40.0, got[1].PNL)
}

func TestReplaceAll_IsIdempotentReplace(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{})
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolM2K, sampleRecords()))
	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolM2K, sampleRecords()))

	got, err := repo.QueryAll(ctx, domain.SymbolM2K)
	require.NoError(t, err)
	assert.Len(t, got, 3, "re-import must replace, not append")
}

func TestReplaceAll_SymbolsAreIsolated(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{})
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMES, sampleRecords()))
	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMNQ, sampleRecords()[:1]))

	mes, err := repo.QueryAll(ctx, domain.SymbolMES)
	require.NoError(t, err)
	mnq, err := repo.QueryAll(ctx, domain.SymbolMNQ)
	require.NoError(t, err)
	assert.Len(t, mes, 3)
	assert.Len(t, mnq, 1)
}

func TestReplaceAll_InvalidSymbol(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{})
	defer cleanup()

	err := repo.ReplaceAll(context.Background(), domain.Symbol("ES"), sampleRecords())
	assert.Error(t, err)
}

func TestQueryAll_PagesThroughLargeHistories(t *testing.T) {
	// Small page size so a modest history spans several pages, including a
	// final short page.
	repo, cleanup := setupTestDB(t, Config{PageSize: 7, BatchSize: 5})
	defer cleanup()
	ctx := context.Background()

	records := make([]*domain.TradeLog, 23)
	balance := 1000.0
	for i := range records {
		records[i] = &domain.TradeLog{
			TradeDate:     day(2022, 1, 1).AddDate(0, 0, i),
			PNL:           float64(i),
			OrderSize:     1,
			Price:         100,
			BalanceBefore: balance,
		}
		balance += float64(i)
	}
	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMNQ, records))

	got, err := repo.QueryAll(ctx, domain.SymbolMNQ)
	require.NoError(t, err)
	require.Len(t, got, 23)
	for i, rec := range got {
		assert.Equal(t, float64(i), rec.PNL, "pagination must preserve order")
	}
}

func TestQueryAll_ExactPageBoundary(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{PageSize: 5})
	defer cleanup()
	ctx := context.Background()

	records := make([]*domain.TradeLog, 10)
	for i := range records {
		records[i] = &domain.TradeLog{
			TradeDate:     day(2022, 3, 1).AddDate(0, 0, i),
			PNL:           1,
			OrderSize:     1,
			Price:         1,
			BalanceBefore: 1000 + float64(i),
		}
	}
	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMES, records))

	got, err := repo.QueryAll(ctx, domain.SymbolMES)
	require.NoError(t, err)
	assert.Len(t, got, 10, "a full final page must be followed by one empty fetch, not a loop")
}

func TestQueryRange(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{})
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMES, sampleRecords()))

	got, err := repo.QueryRange(ctx, domain.SymbolMES, day(2022, 2, 1))
	require.NoError(t, err)
	require.Len(t, got, 1, "range start is inclusive")
	assert.Equal(t, 15.5, got[0].PNL)

	got, err = repo.QueryRange(ctx, domain.SymbolMES, day(2021, 12, 1))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestQueryLatestDate(t *testing.T) {
	repo, cleanup := setupTestDB(t, Config{})
	defer cleanup()
	ctx := context.Background()

	latest, err := repo.QueryLatestDate(ctx, domain.SymbolMES)
	require.NoError(t, err)
	assert.True(t, latest.IsZero(), "empty symbol yields the zero time")

	require.NoError(t, repo.ReplaceAll(ctx, domain.SymbolMES, sampleRecords()))

	latest, err = repo.QueryLatestDate(ctx, domain.SymbolMES)
	require.NoError(t, err)
	assert.True(t, latest.Equal(day(2022, 2, 1)))
}
