package usecase

import (
	"context"
	"net/http"

	"posadmin/internal/domain/model"
	repo "posadmin/internal/repository"
)

// 注文に載せたい1行のリクエスト。
type OrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// 1商品に対する販売数量の正味変化。
// Delta > 0 は追加販売（在庫減・販売数増）、Delta < 0 は返品（在庫増・販売数減）。
type QuantityDelta struct {
	ProductID int64
	Delta     int64
}

// リクエスト行の形チェック。
// ここで落ちたらDBには一切触らない。
func validateOrderLineRequests(reqs []OrderLineRequest) error {
	seen := make(map[int64]struct{}, len(reqs))
	for _, in := range reqs {
		if in.ProductID <= 0 {
			return NewHTTPError(http.StatusBadRequest, "each product must have a valid product_id")
		}
		if in.Quantity <= 0 {
			return NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
		if _, dup := seen[in.ProductID]; dup {
			return NewHTTPError(http.StatusBadRequest, "duplicate product_id in request")
		}
		seen[in.ProductID] = struct{}{}
	}
	return nil
}

// reconcileLines は既存の明細と新しいリクエストを突き合わせ、
// 確定明細・合計・商品ごとの数量デルタを計算する。
//
// 3段階で進める:
//  1. 削除: リクエストに現れない既存行は落とし、-旧数量 のデルタを出す。
//  2. 更新or追加: 既存行と一致（productIDのみで照合）すれば数量を差し替え、
//     行合計は保存済み単価で再計算する（現在のカタログ価格は見ない）。
//     一致しなければ商品を引いてスナップショットを作り、+数量 のデルタを出す。
//  3. 合計: 確定明細の行合計を足すだけ。
//
// ここでは一切書き込まない。呼び出し側がトランザクション内で永続化する。
func reconcileLines(
	ctx context.Context,
	products repo.ProductRepository,
	prev []model.OrderLine,
	reqs []OrderLineRequest,
) ([]model.OrderLine, int64, []QuantityDelta, error) {

	requested := make(map[int64]int64, len(reqs))
	for _, in := range reqs {
		requested[in.ProductID] = in.Quantity
	}

	prevByProduct := make(map[int64]model.OrderLine, len(prev))
	for _, line := range prev {
		prevByProduct[line.ProductID] = line
	}

	deltas := make([]QuantityDelta, 0, len(prev)+len(reqs))

	//1. 削除検出。リクエストから消えた商品は全量を在庫へ戻す。
	for _, line := range prev {
		if _, still := requested[line.ProductID]; !still {
			deltas = append(deltas, QuantityDelta{
				ProductID: line.ProductID,
				Delta:     -line.Quantity,
			})
		}
	}

	//2. 更新or追加。リクエストの並び順を保つ。
	finalLines := make([]model.OrderLine, 0, len(reqs))
	var total int64 = 0

	for _, in := range reqs {
		if existing, ok := prevByProduct[in.ProductID]; ok {
			//更新。スナップショットは据え置き。単価は販売時のまま。
			oldQty := existing.Quantity
			existing.Quantity = in.Quantity
			existing.LineTotal = in.Quantity * existing.UnitPriceSnapshot

			finalLines = append(finalLines, existing)
			deltas = append(deltas, QuantityDelta{
				ProductID: in.ProductID,
				Delta:     in.Quantity - oldQty,
			})
			total += existing.LineTotal
			continue
		}

		//追加。現在のカタログから新規スナップショット。
		p, err := products.FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return nil, 0, nil, NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return nil, 0, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		line := newLineFromProduct(p, in.Quantity)
		finalLines = append(finalLines, line)
		deltas = append(deltas, QuantityDelta{ProductID: p.ID, Delta: in.Quantity})
		total += line.LineTotal
	}

	return finalLines, total, deltas, nil
}

// 現在の商品情報から新しい明細を切り出す。
// ここで凍結した値は以後カタログが変わっても動かない。
func newLineFromProduct(p model.Product, qty int64) model.OrderLine {
	return model.OrderLine{
		ProductID:                   p.ID,
		NameSnapshot:                p.Name,
		BarcodeSnapshot:             p.Barcode,
		UnitPriceSnapshot:           p.Price,
		CategoryIDSnapshot:          p.CategoryID,
		CategoryNameSnapshot:        p.CategoryName,
		CategoryDescriptionSnapshot: p.CategoryDescription,
		Quantity:                    qty,
		LineTotal:                   qty * p.Price,
	}
}

// ゼロのデルタは適用前に捨てる。書いても何も起きない。
func nonZeroDeltas(deltas []QuantityDelta) []QuantityDelta {
	out := make([]QuantityDelta, 0, len(deltas))
	for _, d := range deltas {
		if d.Delta != 0 {
			out = append(out, d)
		}
	}
	return out
}
