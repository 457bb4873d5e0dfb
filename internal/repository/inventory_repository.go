package repository

import "context"

// 在庫・累計販売数への差分適用の約束。
type InventoryRepository interface {
	// 数量デルタを1商品に適用する。
	// delta > 0 は追加販売（在庫が減り、販売数が増える）、
	// delta < 0 は返品（在庫が戻り、販売数が減る）。
	// どちらのカウンタも0未満にはならず、1文のUPDATEで原子的に行う。
	ApplyQuantityDelta(ctx context.Context, productID int64, delta int64) error
}
