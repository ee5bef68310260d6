package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/api/dto"
	"alfatrade/internal/user/service"
)

type Handler struct {
	UserService  *service.UserService
	JWT          *service.JWTManager
	Logger       *zap.Logger
	ExposeErrors bool
}

func NewHandler(us *service.UserService, jwtSecret string, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		UserService:  us,
		JWT:          service.NewJWTManager(jwtSecret),
		Logger:       logger,
		ExposeErrors: exposeErrors,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			api.Error(w, http.StatusConflict, "User already exists", nil)
			return
		}
		h.Logger.Error("register failed", zap.Error(err))
		api.InternalError(w, "Registration failed", err, h.ExposeErrors)
		return
	}

	h.respondWithToken(w, http.StatusCreated, u.ID, u.Email, "User registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			api.Error(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		h.Logger.Error("login failed", zap.Error(err))
		api.InternalError(w, "Login failed", err, h.ExposeErrors)
		return
	}

	h.respondWithToken(w, http.StatusOK, u.ID, u.Email, "Login successful")
}

func (h *Handler) respondWithToken(w http.ResponseWriter, status int, id, email, message string) {
	// Генерация JWT
	token, err := h.JWT.Generate(id, email)
	if err != nil {
		h.Logger.Error("token generation failed", zap.Error(err))
		api.InternalError(w, "Token generation failed", err, h.ExposeErrors)
		return
	}

	api.OKWithMessage(w, status, dto.UserResponse{ID: id, Email: email, Token: token}, message)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.DecodeError(w, err)
		return false
	}
	if err := dto.Validate.Struct(dst); err != nil {
		api.Error(w, http.StatusBadRequest, "Email and password are required", dto.FieldErrors(err))
		return false
	}
	return true
}
