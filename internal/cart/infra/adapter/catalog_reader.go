package adapter

import (
	"context"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProducts(ctx context.Context, ids []string) (map[string]cartdomain.Product, error) {
	found, err := r.svc.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[string]cartdomain.Product, len(found))
	for id, p := range found {
		out[id] = cartdomain.Product{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Images:    p.Images,
			Inventory: p.Inventory,
		}
	}
	return out, nil
}
