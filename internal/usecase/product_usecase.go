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

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
	}
}

type CreateProductInput struct {
	Name       string
	Barcode    string
	CategoryID int64 // 0なら"None"カテゴリに割り当てる
	Price      int64
	Stock      int64
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, adminUserID int64, in CreateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Barcode) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "barcode required")
	}
	if in.Price <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	//バーコードの重複チェック
	barcode := strings.TrimSpace(in.Barcode)
	if _, err := u.productRepo.FindByBarcode(ctx, barcode); err == nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "barcode already exists")
	} else if err != repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//カテゴリ。指定が無ければ"None"に割り当てる（無ければ作る）。
	category, err := u.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return model.Product{}, err
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:                strings.TrimSpace(in.Name),
		Barcode:             barcode,
		Price:               in.Price,
		Stock:               in.Stock,
		Sales:               0,
		CategoryID:          category.ID,
		CategoryName:        category.Name,
		CategoryDescription: category.Description,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 部分更新の入力。nilのフィールドは据え置き。
type UpdateProductInput struct {
	Name       *string
	Barcode    *string
	CategoryID *int64
	Price      *int64
	Stock      *int64
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in UpdateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeStock := p.Stock

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}

	//バーコード変更時だけ重複チェック
	if in.Barcode != nil && strings.TrimSpace(*in.Barcode) != p.Barcode {
		barcode := strings.TrimSpace(*in.Barcode)
		if barcode == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "barcode required")
		}
		if _, err := u.productRepo.FindByBarcode(ctx, barcode); err == nil {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "barcode already exists")
		} else if err != repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.Barcode = barcode
	}

	//カテゴリ変更はスナップショットも取り直す
	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		category, err := u.categoryRepo.FindByID(ctx, *in.CategoryID)
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.CategoryID = category.ID
		p.CategoryName = category.Name
		p.CategoryDescription = category.Description
	}

	if in.Price != nil {
		if *in.Price <= 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
		}
		p.Price = *in.Price
	}

	if in.Stock != nil {
		if *in.Stock < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
		}
		p.Stock = *in.Stock
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫を直したときだけ監査ログを残す
	if in.Stock != nil && *in.Stock != beforeStock {
		beforeJSON := fmt.Sprintf(`{"stock":%d}`, beforeStock)
		afterJSON := fmt.Sprintf(`{"stock":%d}`, *in.Stock)
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// カテゴリ指定の解決。0ならデフォルトの"None"を使い、無ければ作る。
func (u *ProductUsecase) resolveCategory(ctx context.Context, categoryID int64) (model.Category, error) {
	if categoryID > 0 {
		category, err := u.categoryRepo.FindByID(ctx, categoryID)
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		if err != nil {
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return category, nil
	}

	category, err := u.categoryRepo.FindByName(ctx, model.DefaultCategoryName)
	if err == nil {
		return category, nil
	}
	if err != repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        model.DefaultCategoryName,
		Description: "Default category for uncategorized items",
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}
