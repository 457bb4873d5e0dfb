package handler

import (
	"net/http"
	"strconv"

	"posadmin/internal/config"
	"posadmin/internal/domain/model"
	"posadmin/internal/middleware"
	repo "posadmin/internal/repository"
	"posadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/audit-logs 監査ログの閲覧。管理者のみ。
type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

// DI
func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/audit-logs", middleware.AuthJWT(cfg), middleware.AllowRoles(string(model.RoleAdmin)))
	g.GET("", h.list)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Message: "unauthorized"})
	}

	var f repo.AuditLogFilter

	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid limit"})
		}
		f.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid offset"})
		}
		f.Offset = n
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		r := model.AuditResourceType(v)
		f.ResourceType = &r
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid resource_id"})
		}
		f.ResourceID = &id
	}

	logs, err := h.uc.List(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}

	return writeJSON(c, http.StatusOK, "", logs)
}
