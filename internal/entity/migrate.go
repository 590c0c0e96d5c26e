package entity

import (
	"context"

	"github.com/questx-lab/taskreward/pkg/xcontext"
)

// MigrateTable creates the schema through gorm. Production databases are
// migrated by the versioned scripts in the migration package instead.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Task{},
		&AddedTask{},
		&Submission{},
		&PointEntry{},
		&Claim{},
	)
}
