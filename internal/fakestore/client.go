// Package fakestore fetches the product catalog from a fakestoreapi-style
// REST endpoint.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

// StatusError is returned when the catalog answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog responded %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a client for baseURL. A nil httpClient gets one with the given
// timeout. There is no retry: a failed fetch is reported to the caller.
func New(baseURL string, httpClient *http.Client, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse catalog url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("catalog url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: u, http: httpClient, logger: logger}, nil
}

type productDTO struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Rating      struct {
		Rate  json.Number `json:"rate"`
		Count int         `json:"count"`
	} `json:"rating"`
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, "/products", &dtos); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(dtos))
	seen := make(map[int64]struct{}, len(dtos))
	for _, dto := range dtos {
		p, err := toProduct(dto)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, errors.Errorf("catalog lists product %d twice", p.ID)
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}
	c.logger.Info().Int("count", len(products)).Msg("fakestore: list products")
	return products, nil
}

// GetProduct fetches a single product. Unknown ids yield domain.ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var dto productDTO
	err := c.getJSON(ctx, "/products/"+strconv.FormatInt(id, 10), &dto)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, io.EOF) {
			// fakestoreapi answers unknown ids with 200 and an empty body.
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p, err := toProduct(dto)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", u.String()).Msg("fakestore: request failed")
		return errors.Wrapf(err, "get %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

func toProduct(dto productDTO) (domain.Product, error) {
	if dto.ID <= 0 {
		return domain.Product{}, errors.Wrapf(domain.ErrInvalidProduct, "catalog product id %d", dto.ID)
	}
	price, err := decimal.NewFromString(dto.Price.String())
	if err != nil {
		return domain.Product{}, errors.Wrapf(domain.ErrInvalidProduct, "catalog product %d price %q", dto.ID, dto.Price)
	}
	if price.IsNegative() {
		return domain.Product{}, errors.Wrapf(domain.ErrInvalidProduct, "catalog product %d has negative price", dto.ID)
	}

	rate := decimal.Zero
	if dto.Rating.Rate != "" {
		if r, err := decimal.NewFromString(dto.Rating.Rate.String()); err == nil {
			rate = r
		}
	}

	return domain.Product{
		ID:          dto.ID,
		Title:       strings.TrimSpace(dto.Title),
		Price:       price.Round(2),
		Category:    dto.Category,
		Description: dto.Description,
		ImageURL:    dto.Image,
		Rating:      domain.Rating{Rate: rate, Count: dto.Rating.Count},
	}, nil
}
