package repository

import (
	"github.com/questx-lab/questkit/config"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/errorx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the database of the configured driver and migrates the
// tables of this module.
func NewDatabase(cfg config.DatabaseConfigs) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	default:
		return nil, errorx.New(errorx.BadRequest, "Unsupported database driver %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	if err := entity.MigrateTable(db); err != nil {
		return nil, err
	}

	return db, nil
}
