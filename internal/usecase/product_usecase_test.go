package usecase

import (
	"context"
	"testing"

	"posadmin/internal/domain/model"
	repo "posadmin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

// =====================
// CreateProduct tests
// =====================

func TestProductUsecase_Create_Validation(t *testing.T) {
	productRepo := new(ProductRepoMock)
	categoryRepo := new(CategoryRepoMock)
	auditRepo := new(AuditRepoMock)
	uc := NewProductUsecase(productRepo, categoryRepo, auditRepo)

	cases := []struct {
		name string
		in   CreateProductInput
		want string
	}{
		{"unauthorized以外で名前なし", CreateProductInput{Barcode: "b", Price: 10}, "name required"},
		{"バーコードなし", CreateProductInput{Name: "a", Price: 10}, "barcode required"},
		{"価格ゼロ", CreateProductInput{Name: "a", Barcode: "b", Price: 0}, "price must be > 0"},
		{"在庫が負", CreateProductInput{Name: "a", Barcode: "b", Price: 10, Stock: -1}, "stock must be >= 0"},
	}

	for _, tc := range cases {
		_, err := uc.CreateProduct(context.Background(), 1, tc.in)
		assertErrContains(t, err, tc.want)
	}

	productRepo.AssertNotCalled(t, "Create")
}

func TestProductUsecase_Create_UnauthorizedActor(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock), new(AuditRepoMock))

	_, err := uc.CreateProduct(context.Background(), 0, CreateProductInput{Name: "a", Barcode: "b", Price: 10})
	assertErrContains(t, err, "unauthorized")
}

func TestProductUsecase_Create_DuplicateBarcode(t *testing.T) {
	productRepo := new(ProductRepoMock)
	categoryRepo := new(CategoryRepoMock)
	uc := NewProductUsecase(productRepo, categoryRepo, new(AuditRepoMock))

	productRepo.On("FindByBarcode", mock.Anything, "dup-1").Return(model.Product{ID: 5, Barcode: "dup-1"}, nil)

	_, err := uc.CreateProduct(context.Background(), 1, CreateProductInput{Name: "a", Barcode: "dup-1", Price: 10})
	assertErrContains(t, err, "barcode already exists")

	productRepo.AssertNotCalled(t, "Create")
}

func TestProductUsecase_Create_WithCategorySnapshot(t *testing.T) {
	productRepo := new(ProductRepoMock)
	categoryRepo := new(CategoryRepoMock)
	uc := NewProductUsecase(productRepo, categoryRepo, new(AuditRepoMock))

	productRepo.On("FindByBarcode", mock.Anything, "bc-7").Return(model.Product{}, repo.ErrNotFound)
	categoryRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Category{
		ID: 2, Name: "Drinks", Description: "cold drinks",
	}, nil)
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == 2 && p.CategoryName == "Drinks" && p.CategoryDescription == "cold drinks"
	})).Return(model.Product{ID: 1, Name: "cola", CategoryID: 2, CategoryName: "Drinks"}, nil)

	p, err := uc.CreateProduct(context.Background(), 1, CreateProductInput{
		Name: "cola", Barcode: "bc-7", CategoryID: 2, Price: 120, Stock: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Drinks", p.CategoryName)

	productRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

// カテゴリ未指定なら"None"を使い、無ければその場で作る
func TestProductUsecase_Create_DefaultCategoryCreatedOnDemand(t *testing.T) {
	productRepo := new(ProductRepoMock)
	categoryRepo := new(CategoryRepoMock)
	uc := NewProductUsecase(productRepo, categoryRepo, new(AuditRepoMock))

	productRepo.On("FindByBarcode", mock.Anything, "bc-8").Return(model.Product{}, repo.ErrNotFound)
	categoryRepo.On("FindByName", mock.Anything, model.DefaultCategoryName).Return(model.Category{}, repo.ErrNotFound)
	categoryRepo.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == model.DefaultCategoryName
	})).Return(model.Category{ID: 9, Name: model.DefaultCategoryName}, nil)
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == 9 && p.CategoryName == model.DefaultCategoryName
	})).Return(model.Product{ID: 1, CategoryID: 9}, nil)

	_, err := uc.CreateProduct(context.Background(), 1, CreateProductInput{
		Name: "snack", Barcode: "bc-8", Price: 100,
	})
	assert.NoError(t, err)

	categoryRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

// =====================
// UpdateProduct tests
// =====================

func TestProductUsecase_Update_NotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := NewProductUsecase(productRepo, new(CategoryRepoMock), new(AuditRepoMock))

	productRepo.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.UpdateProduct(context.Background(), 1, 404, UpdateProductInput{Name: strPtr("x")})
	assertErrContains(t, err, "product not found")
}

func TestProductUsecase_Update_BarcodeConflict(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := NewProductUsecase(productRepo, new(CategoryRepoMock), new(AuditRepoMock))

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Barcode: "old"}, nil)
	productRepo.On("FindByBarcode", mock.Anything, "taken").Return(model.Product{ID: 2, Barcode: "taken"}, nil)

	_, err := uc.UpdateProduct(context.Background(), 1, 1, UpdateProductInput{Barcode: strPtr("taken")})
	assertErrContains(t, err, "barcode already exists")

	productRepo.AssertNotCalled(t, "Update")
}

// カテゴリを変えたらスナップショットも取り直す
func TestProductUsecase_Update_CategoryChangeRefreshesSnapshot(t *testing.T) {
	productRepo := new(ProductRepoMock)
	categoryRepo := new(CategoryRepoMock)
	uc := NewProductUsecase(productRepo, categoryRepo, new(AuditRepoMock))

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Name: "cola", Barcode: "bc", Price: 120,
		CategoryID: 2, CategoryName: "Drinks",
	}, nil)
	categoryRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Category{
		ID: 3, Name: "Food", Description: "warm food",
	}, nil)
	productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == 3 && p.CategoryName == "Food" && p.CategoryDescription == "warm food"
	})).Return(nil)

	p, err := uc.UpdateProduct(context.Background(), 1, 1, UpdateProductInput{CategoryID: i64Ptr(3)})
	assert.NoError(t, err)
	assert.Equal(t, "Food", p.CategoryName)

	productRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

// 在庫を直した更新は監査ログを残す
func TestProductUsecase_Update_StockChangeAudited(t *testing.T) {
	productRepo := new(ProductRepoMock)
	auditRepo := new(AuditRepoMock)
	uc := NewProductUsecase(productRepo, new(CategoryRepoMock), auditRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Barcode: "bc", Price: 10, Stock: 5}, nil)
	productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.ResourceType == model.AuditResourceProduct &&
			l.BeforeJSON == `{"stock":5}` &&
			l.AfterJSON == `{"stock":12}`
	})).Return(nil)

	p, err := uc.UpdateProduct(context.Background(), 7, 1, UpdateProductInput{Stock: i64Ptr(12)})
	assert.NoError(t, err)
	assert.Equal(t, int64(12), p.Stock)

	auditRepo.AssertExpectations(t)
}

// 在庫に触らない更新では監査ログを書かない
func TestProductUsecase_Update_NoStockChange_NoAudit(t *testing.T) {
	productRepo := new(ProductRepoMock)
	auditRepo := new(AuditRepoMock)
	uc := NewProductUsecase(productRepo, new(CategoryRepoMock), auditRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Barcode: "bc", Price: 10}, nil)
	productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.UpdateProduct(context.Background(), 7, 1, UpdateProductInput{Price: i64Ptr(200)})
	assert.NoError(t, err)

	auditRepo.AssertNotCalled(t, "Create")
}

// =====================
// DeleteProduct tests
// =====================

func TestProductUsecase_Delete_Success(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := NewProductUsecase(productRepo, new(CategoryRepoMock), new(AuditRepoMock))

	productRepo.On("SoftDelete", mock.Anything, int64(1)).Return(nil)

	err := uc.DeleteProduct(context.Background(), 1, 1)
	assert.NoError(t, err)

	productRepo.AssertExpectations(t)
}

func TestProductUsecase_Delete_NotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := NewProductUsecase(productRepo, new(CategoryRepoMock), new(AuditRepoMock))

	productRepo.On("SoftDelete", mock.Anything, int64(404)).Return(repo.ErrNotFound)

	err := uc.DeleteProduct(context.Background(), 1, 404)
	assertErrContains(t, err, "product not found")
}
