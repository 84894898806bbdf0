package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

// DBTX is the subset of *pgxpool.Pool used by the repository.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepo struct {
	pool   DBTX
	logger zerolog.Logger
}

func NewPostgres(pool DBTX, logger zerolog.Logger) *PostgresRepo {
	return &PostgresRepo{pool: pool, logger: logger}
}

const selectColumns = `id, title, price_cents, COALESCE(category, ''), COALESCE(description, ''), COALESCE(image_url, ''), COALESCE(rating_rate, 0)::text, COALESCE(rating_count, 0), created_at`

func (r *PostgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + `
FROM products
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("product repo: list")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("product repo: list rows")
		return nil, err
	}
	r.logger.Debug().Int("count", len(result)).Msg("product repo: list")
	return result, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := `SELECT ` + selectColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("id", id).Msg("product repo: get not found")
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Int64("id", id).Msg("product repo: get")
		return nil, err
	}
	return &p, nil
}

// Upsert inserts the product or overwrites the stored row with the same id.
func (r *PostgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID <= 0 || product.Price.IsNegative() {
		return nil, fmt.Errorf("product repo: upsert id=%d: %w", product.ID, domain.ErrInvalidProduct)
	}
	const q = `
INSERT INTO products (id, title, price_cents, category, description, image_url, rating_rate, rating_count)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7::numeric, $8)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url,
    rating_rate = EXCLUDED.rating_rate,
    rating_count = EXCLUDED.rating_count,
    updated_at = now()
RETURNING created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Title,
		product.PriceCents(),
		product.Category,
		product.Description,
		product.ImageURL,
		product.Rating.Rate.String(),
		product.Rating.Count,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("id", product.ID).Msg("product repo: upsert")
		return nil, err
	}
	res.Price = domain.PriceFromCents(product.PriceCents())
	r.logger.Debug().Int64("id", res.ID).Msg("product repo: upserted")
	return &res, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		cents int64
		rate  string
	)
	if err := row.Scan(&p.ID, &p.Title, &cents, &p.Category, &p.Description, &p.ImageURL, &rate, &p.Rating.Count, &p.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	p.Price = domain.PriceFromCents(cents)
	if r, err := decimal.NewFromString(rate); err == nil {
		p.Rating.Rate = r
	}
	return p, nil
}
