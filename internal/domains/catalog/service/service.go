package service

import (
	"context"
	"fmt"
	"net/url"

	"goiashop-bff/internal/domains/catalog"
	"goiashop-bff/internal/gateway"
)

// Catalog is a read-only passthrough to the backend's product listing.
// The backoffice owns the data; this layer only shapes the query and
// relays the error taxonomy.
type Catalog struct {
	client *gateway.Client
}

func NewCatalog(client *gateway.Client) *Catalog {
	return &Catalog{client: client}
}

// List fetches one page of products.
func (s *Catalog) List(ctx context.Context, params catalog.ListParams) ([]catalog.Product, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", params.Page))
	q.Set("limit", fmt.Sprintf("%d", params.Limit))
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	var products []catalog.Product
	if err := s.client.GetJSON(ctx, "/products?"+q.Encode(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product by id.
func (s *Catalog) Get(ctx context.Context, productID string) (catalog.Product, error) {
	var product catalog.Product
	if err := s.client.GetJSON(ctx, "/products/"+url.PathEscape(productID), &product); err != nil {
		return catalog.Product{}, err
	}
	return product, nil
}
