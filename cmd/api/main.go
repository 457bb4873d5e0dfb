package main

import (
	"fmt"
	"log"
	"time"

	"posadmin/internal/config"
	"posadmin/internal/domain/model"
	"posadmin/internal/handler"
	"posadmin/internal/infra/db"
	infraRepo "posadmin/internal/infra/repository"
	"posadmin/internal/mailer"
	"posadmin/internal/server"
	"posadmin/internal/usecase"
	auth "posadmin/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(cfg config.Config) *jwtIssuer {
	//アクセストークンは7日
	return &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 7 * 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, name string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": string(role),
		"name": name,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	resetRepo := infraRepo.NewPasswordResetGormRepository(gormDB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(gormDB)
	lineRepo := infraRepo.NewOrderLineGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg)
	mail := mailer.FromConfig(cfg)

	//Usecase生成
	signupUC := auth.NewSignupUsecase(userRepo, hasher, issuer, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	resetUC := auth.NewPasswordResetUsecase(userRepo, resetRepo, hasher, mail, idGen, clock, cfg.ShopName)

	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, auditRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, productRepo, lineRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(signupUC, loginUC, resetUC),
		Product:   handler.NewProductHandler(productUC),
		Category:  handler.NewCategoryHandler(categoryUC),
		Order:     handler.NewOrderHandler(orderUC),
		Dashboard: handler.NewDashboardHandler(dashboardUC),
		AuditLog:  handler.NewAuditLogHandler(auditUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		log.Fatal(err)
	}
}
