// Package testutil provides SQLite-backed fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wheelmaster/tireshop/config"
	"github.com/wheelmaster/tireshop/internal/database"
	"github.com/wheelmaster/tireshop/internal/domain"
	"gorm.io/gorm"
)

// NewDB opens an empty SQLite database in a temporary directory. The
// connection pool is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Open(config.DBConfig{
		Type: "sqlite",
		Name: filepath.Join(dir, "test.db"),
	}, dir)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NewMigratedDB is NewDB with the products and orders tables created.
func NewMigratedDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CreateProduct inserts a product with the given name and price.
func CreateProduct(t testing.TB, db *gorm.DB, name string, price string) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:        name,
		Description: name + " test tire",
		Price:       decimal.RequireFromString(price),
		Width:       185,
		ImageURL:    "https://example.com/" + name + ".jpg",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return p
}
