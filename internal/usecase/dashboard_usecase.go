package usecase

import (
	"context"
	"net/http"
	"time"

	repo "posadmin/internal/repository"
)

type DashboardUsecase struct {
	dashboardRepo repo.DashboardRepository
	productRepo   repo.ProductRepository
	orderLineRepo repo.OrderLineRepository
}

func NewDashboardUsecase(
	dashboardRepo repo.DashboardRepository,
	productRepo repo.ProductRepository,
	orderLineRepo repo.OrderLineRepository,
) *DashboardUsecase {
	return &DashboardUsecase{
		dashboardRepo: dashboardRepo,
		productRepo:   productRepo,
		orderLineRepo: orderLineRepo,
	}
}

type TodaySection struct {
	Date        string        `json:"date"`
	OrdersCount int           `json:"orders_count"`
	Revenue     int64         `json:"revenue"`
	Orders      []OrderOutput `json:"orders"`
}

type MonthlySection struct {
	Year int                    `json:"year"`
	Data []repo.MonthlySalesRow `json:"data"`
}

type YearlySection struct {
	Data []repo.YearlySalesRow `json:"data"`
}

type OverallSection struct {
	TotalOrders  int64 `json:"total_orders"`
	TotalRevenue int64 `json:"total_revenue"`
}

type TopProduct struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Sales int64  `json:"sales"`
	Stock int64  `json:"stock"`
}

type DashboardOutput struct {
	Today         TodaySection            `json:"today"`
	Monthly       MonthlySection          `json:"monthly"`
	Yearly        YearlySection           `json:"yearly"`
	Overall       OverallSection          `json:"overall"`
	TopProducts   []TopProduct            `json:"top_products"`
	CategorySales []repo.CategorySalesRow `json:"category_sales"`
}

// ダッシュボードの集計。yearが0なら今年の月別を返す。
func (u *DashboardUsecase) GetDashboard(ctx context.Context, year int) (DashboardOutput, error) {
	now := time.Now()
	if year <= 0 {
		year = now.Year()
	}

	//当日の範囲
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfToday.Add(24*time.Hour - time.Nanosecond)

	todayOrders, err := u.dashboardRepo.OrdersBetween(ctx, startOfToday, endOfToday)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var todayRevenue int64 = 0
	todayOuts := make([]OrderOutput, 0, len(todayOrders))
	for _, o := range todayOrders {
		todayRevenue += o.Total

		lines, err := u.orderLineRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		todayOuts = append(todayOuts, toOrderOutput(o, lines))
	}

	totalOrders, err := u.dashboardRepo.CountOrders(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalRevenue, err := u.dashboardRepo.SumRevenue(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	top, err := u.productRepo.TopBySales(ctx, 5)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	topProducts := make([]TopProduct, 0, len(top))
	for _, p := range top {
		topProducts = append(topProducts, TopProduct{
			Name:  p.Name,
			Price: p.Price,
			Sales: p.Sales,
			Stock: p.Stock,
		})
	}

	monthly, err := u.dashboardRepo.MonthlySales(ctx, year)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	yearly, err := u.dashboardRepo.YearlySales(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categorySales, err := u.dashboardRepo.CategorySales(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		Today: TodaySection{
			Date:        startOfToday.Format("2006-01-02"),
			OrdersCount: len(todayOrders),
			Revenue:     todayRevenue,
			Orders:      todayOuts,
		},
		Monthly: MonthlySection{
			Year: year,
			Data: monthly,
		},
		Yearly: YearlySection{
			Data: yearly,
		},
		Overall: OverallSection{
			TotalOrders:  totalOrders,
			TotalRevenue: totalRevenue,
		},
		TopProducts:   topProducts,
		CategorySales: categorySales,
	}, nil
}
