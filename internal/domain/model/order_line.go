package model

import "time"

// 注文明細。
// 販売時点の商品情報をスナップショットで凍結する。
// 数量変更時のLineTotal再計算には保存済みのUnitPriceSnapshotを使い、
// カタログの現在価格は参照しない（販売時価格の保存）。
type OrderLine struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	NameSnapshot                string `gorm:"type:varchar(255);not null" json:"name_snapshot"`
	BarcodeSnapshot             string `gorm:"type:varchar(64);not null" json:"barcode_snapshot"`
	UnitPriceSnapshot           int64  `gorm:"not null" json:"unit_price_snapshot"`
	CategoryIDSnapshot          int64  `gorm:"not null" json:"category_id_snapshot"`
	CategoryNameSnapshot        string `gorm:"type:varchar(255);not null" json:"category_name_snapshot"`
	CategoryDescriptionSnapshot string `gorm:"type:text" json:"category_description_snapshot"`

	Quantity  int64 `gorm:"not null" json:"quantity"`
	LineTotal int64 `gorm:"not null" json:"line_total"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
