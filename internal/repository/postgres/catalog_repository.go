package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// skuRow mirrors the skus table; daily_sales is NUMERIC.
type skuRow struct {
	ID             int64           `db:"id"`
	BrandName      string          `db:"brand_name"`
	SKU            string          `db:"sku"`
	ProductName    string          `db:"product_name"`
	Category       string          `db:"category"`
	DailySales     decimal.Decimal `db:"daily_sales"`
	FBAStock       int             `db:"fba_stock"`
	InTransitStock int             `db:"in_transit_stock"`
	IsDiscontinued bool            `db:"is_discontinued"`
}

func (r skuRow) toDomain() domain.SKU {
	category, ok := domain.ParseCategory(r.Category)
	if !ok {
		category = domain.CategoryStandard
	}
	return domain.SKU{
		ID:             r.ID,
		BrandName:      r.BrandName,
		SKU:            r.SKU,
		ProductName:    r.ProductName,
		Category:       category,
		DailySales:     r.DailySales.InexactFloat64(),
		FBAStock:       r.FBAStock,
		InTransitStock: r.InTransitStock,
		IsDiscontinued: r.IsDiscontinued,
	}
}

const skuColumns = `id, brand_name, sku, product_name, category, daily_sales, fba_stock, in_transit_stock, is_discontinued`

func (r *catalogRepository) ListSKUs(ctx context.Context, brand string) ([]domain.SKU, error) {
	query := `SELECT ` + skuColumns + ` FROM skus WHERE brand_name = $1 ORDER BY sku`

	var rows []skuRow
	if err := r.db.SelectContext(ctx, &rows, query, brand); err != nil {
		return nil, fmt.Errorf("error listing skus: %w", err)
	}

	skus := make([]domain.SKU, 0, len(rows))
	for _, row := range rows {
		skus = append(skus, row.toDomain())
	}
	return skus, nil
}
