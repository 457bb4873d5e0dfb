package repository

import (
	"context"

	"posadmin/internal/domain/model"
	repo "posadmin/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 数量デルタの適用。
// 読んでから書くのではなく、1文のUPDATEで在庫と販売数を同時に動かす。
// 在庫は stock - delta、販売数は sales + delta。どちらも0でクランプする。
func (r *InventoryGormRepository) ApplyQuantityDelta(ctx context.Context, productID int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("GREATEST(stock - ?, 0)", delta),
			"sales": gorm.Expr("GREATEST(sales + ?, 0)", delta),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
