package handler

import (
	"net/http"
	"strconv"
	"time"

	"posadmin/internal/config"
	"posadmin/internal/domain/model"
	"posadmin/internal/middleware"
	"posadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/dashboard 売上集計。管理者のみ。
type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

// DI
func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/dashboard", middleware.AuthJWT(cfg), middleware.AllowRoles(string(model.RoleAdmin)))
	g.GET("", h.get)
}

func (h *DashboardHandler) get(c echo.Context) error {
	// year（default 今年）
	year := time.Now().Year()
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 || y > 2100 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid year"})
		}
		year = y
	}

	out, err := h.uc.GetDashboard(c.Request().Context(), year)
	if err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusOK, "", out)
}
