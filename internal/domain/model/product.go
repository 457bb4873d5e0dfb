package model

import (
	"time"

	"gorm.io/gorm"
)

// 商品マスタ。
// Stock / Salesは0未満にならない（更新はGREATESTでクランプする）。
type Product struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Barcode string `gorm:"type:varchar(64);not null;uniqueIndex" json:"barcode"`

	//価格は最小通貨単位の整数
	Price int64 `gorm:"not null" json:"price"`

	//在庫数
	Stock int64 `gorm:"not null;default:0" json:"stock"`

	//累計販売数
	Sales int64 `gorm:"not null;default:0" json:"sales"`

	//カテゴリ参照＋割当時点のスナップショット
	CategoryID          int64  `gorm:"not null;index" json:"category_id"`
	CategoryName        string `gorm:"type:varchar(255);not null" json:"category_name"`
	CategoryDescription string `gorm:"type:text" json:"category_description"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
