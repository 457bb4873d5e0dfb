package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"posadmin/internal/domain/model"
	repo "posadmin/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CreateOrderInput struct {
	CustomerName string
	Products     []OrderLineRequest
}

type UpdateOrderInput struct {
	CustomerName string
	Products     []OrderLineRequest
}

type OrderLineOutput struct {
	ProductID           int64  `json:"product_id"`
	Name                string `json:"name"`
	Barcode             string `json:"barcode"`
	Price               int64  `json:"price"`
	Quantity            int64  `json:"quantity"`
	Total               int64  `json:"total"`
	CategoryName        string `json:"category_name"`
	CategoryDescription string `json:"category_description"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	Number       int64             `json:"number"`
	CustomerName string            `json:"customer_name"`
	Total        int64             `json:"total"`
	CreatedAt    time.Time         `json:"created_at"`
	Products     []OrderLineOutput `json:"products"`
}

// 新規注文。全行が現在のカタログからのスナップショットになる。
// 注文の保存と在庫デルタの適用は1つのトランザクションで行う。
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if len(in.Products) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "products are required")
	}
	if err := validateOrderLineRequests(in.Products); err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//全行を組み立ててから書く。途中で404なら何も書かない。
		lines := make([]model.OrderLine, 0, len(in.Products))
		var total int64 = 0

		for _, req := range in.Products {
			p, err := r.Products().FindByID(ctx, req.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			line := newLineFromProduct(p, req.Quantity)
			lines = append(lines, line)
			total += line.LineTotal
		}

		//伝票番号の採番
		number, err := r.Orders().NextNumber(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			Number:       number,
			CustomerName: strings.TrimSpace(in.CustomerName),
			Total:        total,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderLines().CreateBulk(ctx, orderID, lines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫減・販売数増。各行1文のUPDATEで原子的に。
		for _, line := range lines {
			if err := r.Inventory().ApplyQuantityDelta(ctx, line.ProductID, line.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		created := model.Order{
			ID:           orderID,
			Number:       number,
			CustomerName: strings.TrimSpace(in.CustomerName),
			Total:        total,
			CreatedAt:    now,
		}
		out = toOrderOutput(created, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, lines))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文の改訂。明細の突き合わせ（reconcileLines）が本体。
// productsが空なら名前だけの更新で、在庫には一切触らない。
// 注文の書き換え・明細の入れ替え・デルタ適用は1トランザクションに入れる。
func (u *OrderUsecase) Update(ctx context.Context, actorUserID int64, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if actorUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//形チェックはDBを触る前に終わらせる
	if len(in.Products) > 0 {
		if err := validateOrderLineRequests(in.Products); err != nil {
			return OrderOutput{}, err
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if name := strings.TrimSpace(in.CustomerName); name != "" {
			o.CustomerName = name
		}

		prev, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//名前だけの更新。デルタ無し、在庫もそのまま。
		if len(in.Products) == 0 {
			if err := r.Orders().Update(ctx, o); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(o, prev)
			return nil
		}

		lines, total, deltas, err := reconcileLines(ctx, r.Products(), prev, in.Products)
		if err != nil {
			return err
		}

		beforeTotal := o.Total
		o.Total = total

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細は丸ごと入れ替える
		if err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderLines().CreateBulk(ctx, orderID, lines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//ゼロデルタは捨ててから適用
		for _, d := range nonZeroDeltas(deltas) {
			if err := r.Inventory().ApplyQuantityDelta(ctx, d.ProductID, d.Delta); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//監査ログ（注文改訂）
		beforeJSON := fmt.Sprintf(`{"total":%d,"lines":%d}`, beforeTotal, len(prev))
		afterJSON := fmt.Sprintf(`{"total":%d,"lines":%d}`, total, len(lines))
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除。在庫は戻さない（会計記録の取り下げであって返品ではない）。
func (u *OrderUsecase) Delete(ctx context.Context, actorUserID int64, orderID int64) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := fmt.Sprintf(`{"number":%d,"total":%d}`, o.Number, o.Total)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    `{}`,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	outLines := make([]OrderLineOutput, 0, len(lines))
	for _, line := range lines {
		outLines = append(outLines, OrderLineOutput{
			ProductID:           line.ProductID,
			Name:                line.NameSnapshot,
			Barcode:             line.BarcodeSnapshot,
			Price:               line.UnitPriceSnapshot,
			Quantity:            line.Quantity,
			Total:               line.LineTotal,
			CategoryName:        line.CategoryNameSnapshot,
			CategoryDescription: line.CategoryDescriptionSnapshot,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		Number:       o.Number,
		CustomerName: o.CustomerName,
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
		Products:     outLines,
	}
}
