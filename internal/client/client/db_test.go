package client

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/purchases"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "warranty.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	for _, table := range []string{"goose_db_version", "purchases", "dismissals", "pending_notifications"} {
		assert.True(t, tableExists(t, repos.DB, table), table)
	}

	_, err = os.Stat(dsn)
	assert.NoError(t, err, "database file should be created")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db), "second run should be a no-op")
	assert.True(t, tableExists(t, db, "purchases"))
}

func TestInitDatabase_DataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "warranty.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	p := &models.Purchase{
		Id:             "p1",
		Name:           "Kettle",
		Shop:           "Home",
		PurchaseDate:   time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		WarrantyMonths: 24,
	}
	require.NoError(t, repos.Purchases.CreateOrUpdate(ctx, p))
	require.NoError(t, repos.Dismissals.Save(ctx, map[string]struct{}{"p1": {}}))
	require.NoError(t, repos.Close())

	reopened, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Purchases.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Kettle", got.Name)

	ids, err := reopened.Dismissals.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "p1")
}

func TestInitDatabase_InMemory(t *testing.T) {
	repos, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	assert.True(t, tableExists(t, repos.DB, "pending_notifications"))
}

func TestInitDatabase_PurchaseDatesReadInLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-5", -5*3600)

	repos, err := InitDatabase(ctx, ":memory:", purchases.WithLocation(loc))
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Purchases.CreateOrUpdate(ctx, &models.Purchase{
		Id: "p1", Name: "Kettle", Shop: "Home",
		PurchaseDate: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
	}))

	got, err := repos.Purchases.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, loc, got.PurchaseDate.Location())
	y, m, d := got.PurchaseDate.Date()
	assert.Equal(t, []int{2025, 3, 3}, []int{y, int(m), d})
	assert.Zero(t, got.PurchaseDate.Hour())
}
