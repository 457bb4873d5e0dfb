package repository

import (
	"context"

	"posadmin/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	Update(ctx context.Context, order model.Order) error
	Delete(ctx context.Context, orderID int64) error

	//伝票番号の採番。DBのシーケンスから次の値を取る（1000始まり）。
	NextNumber(ctx context.Context) (int64, error)
}

type OrderLineRepository interface {
	CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)

	//注文の明細を全削除する。改訂時の入れ替えと注文削除で使う。
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
