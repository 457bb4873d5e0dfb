package repository

import (
	"context"
	"errors"

	"posadmin/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//バーコードで1件取得。重複チェックに使う。
	FindByBarcode(ctx context.Context, barcode string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	//累計販売数の多い順に上位limit件を返す（ダッシュボード用）。
	TopBySales(ctx context.Context, limit int) ([]model.Product, error)
}
