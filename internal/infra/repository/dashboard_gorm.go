package repository

import (
	"context"
	"time"

	"posadmin/internal/domain/model"
	repo "posadmin/internal/repository"

	"gorm.io/gorm"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// 全期間の売上合計。
func (r *DashboardGormRepository) SumRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	return revenue, nil
}

func (r *DashboardGormRepository) OrdersBetween(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 指定年の月別集計。注文が無い月は行ごと返らない。
func (r *DashboardGormRepository) MonthlySales(ctx context.Context, year int) ([]repo.MonthlySalesRow, error) {
	var rows []repo.MonthlySalesRow
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Where("EXTRACT(YEAR FROM created_at) = ?", year).
		Group("month").
		Order("month asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.MonthlySalesRow{}, err
	}
	return rows, nil
}

func (r *DashboardGormRepository) YearlySales(ctx context.Context) ([]repo.YearlySalesRow, error) {
	var rows []repo.YearlySalesRow
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("EXTRACT(YEAR FROM created_at)::int AS year, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Group("year").
		Order("year asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.YearlySalesRow{}, err
	}
	return rows, nil
}

// カテゴリ別売上。明細に凍結したカテゴリ名を軸に集計する。
// カタログ側でカテゴリを変えても過去の売上の帰属は動かない。
func (r *DashboardGormRepository) CategorySales(ctx context.Context) ([]repo.CategorySalesRow, error) {
	var rows []repo.CategorySalesRow
	err := r.db.WithContext(ctx).Model(&model.OrderLine{}).
		Select("category_name_snapshot AS category, SUM(quantity) AS items_sold, SUM(line_total) AS revenue").
		Group("category_name_snapshot").
		Order("revenue desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.CategorySalesRow{}, err
	}
	return rows, nil
}
