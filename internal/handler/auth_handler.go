package handler

import (
	"errors"
	"net/http"

	auth "posadmin/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /api/auth 配下。トークン不要の公開ルート。
type AuthHandler struct {
	signup *auth.SignupUsecase
	login  *auth.LoginUsecase
	reset  *auth.PasswordResetUsecase
}

// DI
func NewAuthHandler(
	signup *auth.SignupUsecase,
	login *auth.LoginUsecase,
	reset *auth.PasswordResetUsecase,
) *AuthHandler {
	return &AuthHandler{signup: signup, login: login, reset: reset}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/signup", h.handleSignup)
	g.POST("/login", h.handleLogin)
	g.POST("/request-reset-otp", h.handleRequestOTP)
	g.POST("/reset-password", h.handleResetPassword)
}

type signupRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

func (h *AuthHandler) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	out, err := h.signup.Execute(c.Request().Context(), auth.SignupInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		return writeError(c, mapAuthError(err))
	}

	return writeJSON(c, http.StatusCreated, "signup successful", out)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	out, err := h.login.Execute(c.Request().Context(), auth.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, mapAuthError(err))
	}

	return writeJSON(c, http.StatusOK, "login successful", out)
}

type requestOTPRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) handleRequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	if err := h.reset.RequestOTP(c.Request().Context(), req.Email); err != nil {
		return writeError(c, mapAuthError(err))
	}

	return writeJSON(c, http.StatusOK, "otp sent", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) handleResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid request body"})
	}

	if err := h.reset.Reset(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return writeError(c, mapAuthError(err))
	}

	return writeJSON(c, http.StatusOK, "password updated", nil)
}

// 認証系エラーをHTTPステータスへ寄せる
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmailFormat),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrInvalidOTP):
		return newStatusError(http.StatusBadRequest, err)
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return newStatusError(http.StatusConflict, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return newStatusError(http.StatusUnauthorized, err)
	case errors.Is(err, auth.ErrEmailNotRegistered):
		return newStatusError(http.StatusNotFound, err)
	default:
		return err
	}
}
