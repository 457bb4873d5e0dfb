package handler

import (
	"net/http"
	"strconv"

	"posadmin/internal/config"
	"posadmin/internal/domain/model"
	"posadmin/internal/middleware"
	"posadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders 配下。作成・更新は両ロール、削除は管理者のみ。
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/orders", middleware.AuthJWT(cfg))

	staff := middleware.AllowRoles(string(model.RoleAdmin), string(model.RoleEmployee))
	adminOnly := middleware.AllowRoles(string(model.RoleAdmin))

	g.POST("", h.create, staff)
	g.GET("", h.list, staff)
	g.GET("/:id", h.detail, staff)
	g.PUT("/:id", h.update, staff)
	g.DELETE("/:id", h.remove, adminOnly)
}

type orderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Products     []orderLineRequest `json:"products"`
}

func (h *OrderHandler) create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		CustomerName: req.CustomerName,
		Products:     toLineRequests(req.Products),
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusCreated, "order created", out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON(c, http.StatusOK, "", out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON(c, http.StatusOK, "", out)
}

type updateOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Products     []orderLineRequest `json:"products"`
}

func (h *OrderHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "unauthorized"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid id"})
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	out, err := h.uc.Update(c.Request().Context(), userID, id, usecase.UpdateOrderInput{
		CustomerName: req.CustomerName,
		Products:     toLineRequests(req.Products),
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusOK, "order updated", out)
}

func (h *OrderHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "unauthorized"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusOK, "order deleted", nil)
}

func toLineRequests(in []orderLineRequest) []usecase.OrderLineRequest {
	if in == nil {
		return nil
	}
	out := make([]usecase.OrderLineRequest, 0, len(in))
	for _, l := range in {
		out = append(out, usecase.OrderLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

// :id をint64へ
func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
