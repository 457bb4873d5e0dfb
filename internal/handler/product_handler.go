package handler

import (
	"net/http"

	"posadmin/internal/config"
	"posadmin/internal/domain/model"
	"posadmin/internal/middleware"
	"posadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/products 配下。更新系は管理者のみ。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/products", middleware.AuthJWT(cfg))

	staff := middleware.AllowRoles(string(model.RoleAdmin), string(model.RoleEmployee))
	adminOnly := middleware.AllowRoles(string(model.RoleAdmin))

	g.POST("", h.create, adminOnly)
	g.GET("", h.list, staff)
	g.GET("/:id", h.detail, staff)
	g.PUT("/:id", h.update, adminOnly)
	g.DELETE("/:id", h.remove, adminOnly)
}

type createProductRequest struct {
	Name       string `json:"name"`
	Barcode    string `json:"barcode"`
	CategoryID int64  `json:"category_id"`
	Price      int64  `json:"price"`
	Stock      int64  `json:"stock"`
}

func (h *ProductHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "unauthorized"})
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), userID, usecase.CreateProductInput{
		Name:       req.Name,
		Barcode:    req.Barcode,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Stock:      req.Stock,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusCreated, "product created", p)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON(c, http.StatusOK, "", products)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON(c, http.StatusOK, "", p)
}

type updateProductRequest struct {
	Name       *string `json:"name"`
	Barcode    *string `json:"barcode"`
	CategoryID *int64  `json:"category_id"`
	Price      *int64  `json:"price"`
	Stock      *int64  `json:"stock"`
}

func (h *ProductHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "unauthorized"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid id"})
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), userID, id, usecase.UpdateProductInput{
		Name:       req.Name,
		Barcode:    req.Barcode,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Stock:      req.Stock,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusOK, "product updated", p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "unauthorized"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusOK, "product deleted", nil)
}
