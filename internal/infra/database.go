package infra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"negocioapp/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrRespaldoNoSoportado is returned when the active driver cannot produce a
	// file backup by itself.
	ErrRespaldoNoSoportado = errors.New("respaldo disponible solo para sqlite")
	ErrRespaldoExiste      = errors.New("el archivo de respaldo ya existe")
)

// NewDatabase opens the store, runs AutoMigrate for every entity and then
// applies the idempotent patches GORM cannot express from struct tags.
//
// driver "sqlite" is the embedded default for the register PC; "postgres" lets
// a shop point several registers at a shared server.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("driver %q no soportado", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Unique and foreign-key violations come back as gorm.ErrDuplicatedKey /
		// gorm.ErrForeignKeyViolated regardless of driver.
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// SQLite serializes writers anyway; one connection keeps transactions
		// and pragmas on the same handle.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table, then applies schema patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Grupo{},
		&model.Unidad{},
		&model.Producto{},
		&model.CodigoBarras{},
		&model.Proveedor{},
		&model.CodigoProveedor{},
		&model.Venta{},
		&model.VentaItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL valid on both SQLite and PostgreSQL.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// report drill-down: items of a sale grouped by product
		`CREATE INDEX IF NOT EXISTS idx_venta_items_venta_producto ON venta_items (venta_id, producto_id)`,
		`CREATE INDEX IF NOT EXISTS idx_productos_acceso_rapido ON productos (acceso_rapido)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// Respaldar writes a consistent copy of the SQLite database to ruta using
// VACUUM INTO. The target must not exist.
func Respaldar(db *gorm.DB, ruta string) error {
	if db.Dialector.Name() != "sqlite" {
		return ErrRespaldoNoSoportado
	}
	if _, err := os.Stat(ruta); err == nil {
		return fmt.Errorf("%w: %s", ErrRespaldoExiste, ruta)
	}
	if err := os.MkdirAll(filepath.Dir(ruta), 0o755); err != nil {
		return fmt.Errorf("respaldo: crear directorio: %w", err)
	}
	if err := db.Exec("VACUUM INTO ?", ruta).Error; err != nil {
		return fmt.Errorf("respaldo: %w", err)
	}
	return nil
}

// NombreRespaldo builds a timestamped backup file name inside dir.
func NombreRespaldo(dir string, t time.Time) string {
	return filepath.Join(dir, "negocio-"+t.Format("20060102-150405")+".db")
}
