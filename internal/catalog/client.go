package catalog

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"ordersvc/internal/domain"
	natsinfra "ordersvc/internal/infrastructure/nats"
)

// SubjectValidateProducts is owned by the product catalog service.
const SubjectValidateProducts = "validate_products"

// Client asks the catalog service to resolve product ids to records. The
// catalog is authoritative for product existence, price and display name.
type Client struct {
	nc      *nats.Conn
	timeout time.Duration
}

func NewClient(nc *nats.Conn, timeout time.Duration) *Client {
	return &Client{
		nc:      nc,
		timeout: timeout,
	}
}

type validateProductsRequest struct {
	IDs []string `json:"ids"`
}

// ValidateProducts returns the catalog records for the given ids. The catalog
// may answer with a subset; callers detect missing ids themselves.
func (c *Client) ValidateProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var products []domain.Product
	if err := natsinfra.Request(ctx, c.nc, SubjectValidateProducts, validateProductsRequest{IDs: ids}, &products); err != nil {
		return nil, err
	}

	return products, nil
}
