// Package purchases provides the client-side persistence layer for tracked
// purchases.
//
// The Repository interface is what higher-level services depend on;
// SQLiteRepository implements it over a dbx.DBTX, so it works with both
// *sql.DB and *sql.Tx. Warranty status is never stored: it is derived from
// the persisted fields on every read (see package warranty).
//
// Typical usage
//
//	repo := purchases.NewSQLiteRepository(db)
//	_ = repo.CreateOrUpdate(ctx, &p)
//	all, _ := repo.GetAll(ctx)
//	one, _ := repo.GetByID(ctx, id)
//	_ = repo.DeleteByID(ctx, id)
package purchases
