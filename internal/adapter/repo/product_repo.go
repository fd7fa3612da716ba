package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shilpkart/server/internal/domain"
	"github.com/shilpkart/server/internal/sqlinline"
)

// ProductRepositoryPG implements domain.ProductRepository backed by PostgreSQL.
type ProductRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepositoryPG.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepositoryPG {
	return &ProductRepositoryPG{pool: pool}
}

// Create inserts a new product listing.
func (r *ProductRepositoryPG) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QInsertProduct,
		product.ID,
		product.ArtisanID,
		product.Title,
		product.Description,
		product.Price,
		product.Category,
		product.Images,
		product.Story,
		product.CulturalContext,
	)
	return scanProduct(row)
}

// GetByID fetches a product by UUID.
func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, sqlinline.QSelectProductByID, id))
}

// List returns the most recent product listings.
func (r *ProductRepositoryPG) List(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, sqlinline.QSelectRecentProducts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.ArtisanID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Images, &p.Story, &p.CulturalContext, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ domain.ProductRepository = (*ProductRepositoryPG)(nil)
