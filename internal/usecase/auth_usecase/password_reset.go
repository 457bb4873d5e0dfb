package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"posadmin/internal/domain/model"
	"posadmin/internal/repository"
)

var (
	// 未登録メールへの再設定要求
	ErrEmailNotRegistered = errors.New("this email is not registered")

	// OTPが無い・使用済み・期限切れ・不一致
	ErrInvalidOTP = errors.New("invalid or expired otp")
)

// OTPの有効期間
const otpTTL = 10 * time.Minute

// パスワード再設定（OTP要求と確定）の処理。
type PasswordResetUsecase struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	hasher    PasswordHasher
	mailer    Mailer
	idGen     IDGenerator
	clock     Clock
	shopName  string
}

func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	hasher PasswordHasher,
	mailer Mailer,
	idGen IDGenerator,
	clock Clock,
	shopName string,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		hasher:    hasher,
		mailer:    mailer,
		idGen:     idGen,
		clock:     clock,
		shopName:  shopName,
	}
}

// OTPを発行してメールで送る。
// OTP本体はDBに置かず、sha256ハッシュだけを保存する。
func (u *PasswordResetUsecase) RequestOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrMissingFields
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrEmailNotRegistered
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	now := u.clock.Now()
	reset := &model.PasswordReset{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		OTPHash:   hashOTP(otp),
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}
	if err := u.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	subject := fmt.Sprintf("Password Reset OTP - %s", u.shopName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour password reset OTP is: %s\n\nThis OTP will expire in 10 minutes.\nIf you did not request this, you can ignore this email.\n",
		user.Name, otp,
	)
	return u.mailer.Send(user.Email, subject, body)
}

// OTPを検証して新しいパスワードに差し替える。OTPは使い捨て。
func (u *PasswordResetUsecase) Reset(ctx context.Context, email string, otp string, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	otp = strings.TrimSpace(otp)

	if email == "" || otp == "" || newPassword == "" {
		return ErrMissingFields
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	now := u.clock.Now()

	//未使用・未期限切れの最新OTPだけを見る
	reset, err := u.resetRepo.FindActiveByUserID(ctx, user.ID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	if reset.OTPHash != hashOTP(otp) {
		return ErrInvalidOTP
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePasswordHash(ctx, user.ID, hashed); err != nil {
		return err
	}

	return u.resetRepo.MarkUsed(ctx, reset.ID, now)
}

// 6桁のOTPを作る。crypto/randで偏りなく。
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}
