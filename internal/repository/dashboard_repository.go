package repository

import (
	"context"
	"time"

	"posadmin/internal/domain/model"
)

// 月別集計の1行。
type MonthlySalesRow struct {
	Month   int   `json:"month"`
	Orders  int64 `json:"orders"`
	Revenue int64 `json:"revenue"`
}

// 年別集計の1行。
type YearlySalesRow struct {
	Year    int   `json:"year"`
	Orders  int64 `json:"orders"`
	Revenue int64 `json:"revenue"`
}

// カテゴリ別集計の1行。明細のカテゴリスナップショットを軸にする。
type CategorySalesRow struct {
	Category  string `json:"category"`
	ItemsSold int64  `json:"items_sold"`
	Revenue   int64  `json:"revenue"`
}

// ダッシュボードの集計クエリの約束。
type DashboardRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (int64, error)

	//期間内の注文を新しい順で返す（当日分の表示用）。
	OrdersBetween(ctx context.Context, from, to time.Time) ([]model.Order, error)

	MonthlySales(ctx context.Context, year int) ([]MonthlySalesRow, error)
	YearlySales(ctx context.Context) ([]YearlySalesRow, error)
	CategorySales(ctx context.Context) ([]CategorySalesRow, error)
}
