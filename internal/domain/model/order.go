package model

import "time"

// 注文（会計1件）。
// Numberは人間が読む伝票番号。1000始まりの連番でシーケンスから採番する。
// Totalは常に明細のLineTotal合計と一致する。
type Order struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Number       int64     `gorm:"not null;uniqueIndex" json:"number"`
	CustomerName string    `gorm:"type:varchar(255)" json:"customer_name"`
	Total        int64     `gorm:"not null" json:"total"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
