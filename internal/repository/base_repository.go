package repository

import (
	"context"

	"gorm.io/gorm"

	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// firstOrCreate looks dest up by query and inserts it with attrs applied
// when absent. Natural-key uniqueness stays enforced at the storage
// boundary: the unique index backs the race, not application logic.
// The returned bool reports whether a row was created.
func firstOrCreate[T any](ctx context.Context, db *gorm.DB, dest *T, query any, attrs any) (bool, error) {
	tx := db.WithContext(ctx).Where(query)
	if attrs != nil {
		tx = tx.Attrs(attrs)
	}
	res := tx.FirstOrCreate(dest)
	if res.Error != nil {
		return false, appErr.Wrap(res.Error, appErr.CodeInternal, "get or create failed")
	}
	return res.RowsAffected > 0, nil
}
