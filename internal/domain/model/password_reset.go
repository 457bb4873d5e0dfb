package model

import "time"

// パスワード再設定用のOTP。
// OTP本体は保存せず、ハッシュだけを持つ。使い捨て（UsedAtが入ったら無効）。
type PasswordReset struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	OTPHash   string     `gorm:"column:otp_hash;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	UsedAt    *time.Time `gorm:"index" json:"used_at"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
