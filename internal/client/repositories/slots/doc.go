// Package slots persists small named values (the serialized identity, the
// bearer token, the device identifier) in the client's SQLite database.
//
// The repository works on a dbx.DBTX, so the same code runs against a plain
// *sql.DB or inside a transaction opened with dbx.WithTx:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//		repo := slots.NewSQLiteRepository(tx)
//		if err := repo.Set(ctx, slots.KeyUser, identity); err != nil {
//			return err
//		}
//		return repo.Set(ctx, slots.KeyAccessToken, token)
//	})
package slots
