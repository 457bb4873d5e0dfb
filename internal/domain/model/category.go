package model

import "time"

// 商品カテゴリ。
// 商品と注文明細にはスナップショットとしてコピーされるので、
// ここを後から編集しても過去の注文は変わらない。
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// カテゴリ未指定の商品に割り当てるデフォルトカテゴリ名。
const DefaultCategoryName = "None"
