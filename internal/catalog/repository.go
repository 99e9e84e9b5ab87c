package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/fjod/cart-store/internal/inventory"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Repository serves products and stock from SQLite. It satisfies inventory.Inventory.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// RunMigrations creates the schema and seeds the catalog.
func (r *Repository) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	const query = `SELECT product_id, amount FROM stock WHERE product_id = ?`

	var s domain.Stock
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&s.ProductID, &s.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stock{}, fmt.Errorf("stock %d: %w", productID, inventory.ErrProductNotFound)
	}
	if err != nil {
		return domain.Stock{}, fmt.Errorf("failed to query stock: %w", err)
	}
	return s, nil
}

func (r *Repository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	const query = `SELECT id, title, price, image FROM products WHERE id = ?`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&p.ID, &p.Title, &p.Price, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", productID, inventory.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT id, title, price, image FROM products ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

// SetStock overwrites the available amount of an existing product.
func (r *Repository) SetStock(ctx context.Context, productID int64, amount int) error {
	if amount < 0 {
		return fmt.Errorf("stock amount must not be negative, got %d", amount)
	}

	const query = `
		INSERT INTO stock (product_id, amount)
		SELECT id, ? FROM products WHERE id = ?
		ON CONFLICT (product_id) DO UPDATE SET amount = excluded.amount
	`
	res, err := r.db.ExecContext(ctx, query, amount, productID)
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", productID, inventory.ErrProductNotFound)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
