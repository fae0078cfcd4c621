package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository"
)

type promotionRepository struct {
	db *DB
}

func NewPromotionRepository(db *DB) repository.PromotionRepository {
	return &promotionRepository{db: db}
}

const promotionColumns = `id, brand_name, name, last_year_start_date, last_year_end_date, this_year_start_date, this_year_end_date`

func (r *promotionRepository) ListPromotions(ctx context.Context, brand string) ([]domain.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE brand_name = $1 ORDER BY this_year_start_date NULLS LAST, name`

	var promotions []domain.Promotion
	if err := r.db.SelectContext(ctx, &promotions, query, brand); err != nil {
		return nil, fmt.Errorf("error listing promotions: %w", err)
	}
	return promotions, nil
}

func (r *promotionRepository) GetPromotion(ctx context.Context, brand string, id int64) (*domain.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE brand_name = $1 AND id = $2`

	var promotion domain.Promotion
	if err := r.db.GetContext(ctx, &promotion, query, brand, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error getting promotion: %w", err)
	}
	return &promotion, nil
}

// ListPromotionSales skips rows whose SKU no longer exists.
func (r *promotionRepository) ListPromotionSales(ctx context.Context, promotionID int64) ([]domain.PromotionSale, error) {
	query := `
		SELECT ps.promotion_id, ps.sku_id, s.sku, ps.last_year_sales
		FROM promotion_sales ps
		JOIN skus s ON s.id = ps.sku_id
		WHERE ps.promotion_id = $1
		ORDER BY s.sku
	`

	var sales []domain.PromotionSale
	if err := r.db.SelectContext(ctx, &sales, query, promotionID); err != nil {
		return nil, fmt.Errorf("error listing promotion sales: %w", err)
	}
	return sales, nil
}
