package domain

import "github.com/shopspring/decimal"

// Product is a record returned by the catalog service. Products are owned by
// the catalog and never persisted here; names are joined into responses at
// read time.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
