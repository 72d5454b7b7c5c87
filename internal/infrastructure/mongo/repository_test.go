package mongo

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/domain"
	"calcHistory/internal/pkg/testutil"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCalculationDoc_RoundTrip(t *testing.T) {
	calc := domain.NewCalculation(domain.OpPower, 2, 10, 1024)

	got, err := toDoc(calc).toDomain()

	require.NoError(t, err)
	assert.Equal(t, calc.ID, got.ID)
	assert.Equal(t, calc.Operation, got.Operation)
	assert.Equal(t, calc.Result, got.Result)
}

func TestCalculationDoc_BadID(t *testing.T) {
	_, err := calculationDoc{ID: "not-a-uuid"}.toDomain()
	assert.Error(t, err)
}

func TestHistoryRepo_Integration(t *testing.T) {
	testutil.SkipIfShort(t)

	uri := testutil.StartMongo(t)
	ctx := context.Background()

	client, err := New(ctx, &Config{URI: uri, Database: "testdb", Collection: "calculations"})
	require.NoError(t, err, "не удалось подключиться к MongoDB")
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	repo := NewHistoryRepo(client, newTestLogger())
	require.NoError(t, repo.Ping(ctx))

	first := domain.NewCalculation(domain.OpAdd, 2, 3, 5)
	second := domain.NewCalculation(domain.OpSubtract, 10, 4, 6)
	second.Timestamp = first.Timestamp.Add(time.Second)

	require.NoError(t, repo.SaveHistory(ctx, []domain.Calculation{second, first}))

	list, err := repo.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "старые записи первыми")
	assert.Equal(t, second.ID, list[1].ID)

	// дубликат _id роняет вставку; сохранённая ранее история не теряется
	dup := domain.NewCalculation(domain.OpMultiply, 2, 2, 4)
	assert.Error(t, repo.SaveHistory(ctx, []domain.Calculation{dup, dup}))
	list, err = repo.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	// индекс по created_at переживает подмену коллекции
	specs, err := client.Coll().Indexes().ListSpecifications(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "created_at_1")

	require.NoError(t, repo.SaveHistory(ctx, nil))
	list, err = repo.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
