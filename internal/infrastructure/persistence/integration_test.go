package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// startPostgres spins up a disposable PostgreSQL container with the full
// schema applied. Tests that need real locking semantics run against it;
// everything is skipped when Docker is not available.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("gestion_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)

	migrator, err := migration.New(sqlDB, migrationsPath, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db
}

func TestDocumentSequence_ConcurrentAllocationIsGapless(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	const workers = 20

	var mu sync.Mutex
	numbers := make([]string, 0, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				repo := NewGormDocumentSequenceRepository(tx)
				seq, err := repo.FindForUpdate(ctx, billing.DocumentKindInvoice)
				if err != nil {
					return err
				}
				number := seq.AllocateNext()
				if err := repo.Save(ctx, seq); err != nil {
					return err
				}
				mu.Lock()
				numbers = append(numbers, number)
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, numbers, workers)
	sort.Strings(numbers)
	for i, number := range numbers {
		assert.Equal(t, fmt.Sprintf("FAC-%06d", i+1), number)
	}

	seqRepo := NewGormDocumentSequenceRepository(db)
	seq, err := seqRepo.FindByKind(ctx, billing.DocumentKindInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(workers+1), seq.NextNumber)
	assert.Equal(t, fmt.Sprintf("FAC-%06d", workers+1), seq.Peek())
}

func TestDocumentSequence_SeededSeries(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	seqRepo := NewGormDocumentSequenceRepository(db)
	seq, err := seqRepo.FindByKind(ctx, billing.DocumentKindCreditNote)
	require.NoError(t, err)
	assert.Equal(t, "NC", seq.Prefix)
	assert.Equal(t, "NC-000001", seq.Peek())

	seq, err = seqRepo.FindByKind(ctx, billing.DocumentKindOrder)
	require.NoError(t, err)
	assert.Equal(t, "PED", seq.Prefix)
}
