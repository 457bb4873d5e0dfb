package handler

import (
	"net/http"

	"posadmin/internal/middleware"
	"posadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 失敗レスポンスの共通形
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// 成功レスポンスの共通形。Payloadはリソースごとに変わる。
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Success: false, Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "internal error"})
}

// sentinelエラーをステータス付きに包み直す
func newStatusError(status int, err error) error {
	return usecase.NewHTTPError(status, err.Error())
}

func writeJSON(c echo.Context, status int, message string, payload interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Message: message, Payload: payload})
}

// AuthJWTがセットしたユーザーIDを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
