package importer

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"

	"storefront-cart/internal/domain"
)

type ProductFetcher interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Importer copies the remote catalog into the local product store.
type Importer struct {
	source ProductFetcher
	repo   ProductWriter
	logger zerolog.Logger
}

func New(source ProductFetcher, repo ProductWriter, logger zerolog.Logger) *Importer {
	return &Importer{source: source, repo: repo, logger: logger}
}

// Run fetches the catalog once and upserts every product. It stops at the
// first failed write and reports how many products were stored before it.
func (i *Importer) Run(ctx context.Context) (int, error) {
	products, err := i.source.ListProducts(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "fetch catalog")
	}

	imported := 0
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		if _, err := i.repo.Upsert(ctx, p); err != nil {
			return imported, errors.Wrapf(err, "upsert product %d", p.ID)
		}
		imported++
		i.logger.Debug().Int64("id", p.ID).Str("title", p.Title).Msg("importer: stored product")
	}
	i.logger.Info().Int("count", imported).Msg("importer: done")
	return imported, nil
}
