package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webapp/internal/domain"
	"webapp/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

// CreateUser maneja POST /v1/user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

// GetSelf maneja GET /v1/user/self.
func (h *UserHandler) GetSelf(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	user, err := h.userServ.GetSelf(c.Request.Context(), principal)
	if err != nil {
		h.writeError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateSelf maneja PUT /v1/user/self. Solo nombre, apellido y contraseña
// son editables; enviar id, email o timestamps es un 400.
func (h *UserHandler) UpdateSelf(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Password  *string `json:"password"`

		ID        json.RawMessage `json:"id"`
		Email     json.RawMessage `json:"email"`
		CreatedAt json.RawMessage `json:"created_at"`
		UpdatedAt json.RawMessage `json:"updated_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.ID) > 0 || len(req.Email) > 0 || len(req.CreatedAt) > 0 || len(req.UpdatedAt) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only first_name, last_name and password can be updated"})
		return
	}

	_, err := h.userServ.UpdateSelf(c.Request.Context(), principal, service.UpdateSelfInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err, "update user")
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError traduce errores del servicio a status HTTP con mensajes seguros.
func (h *UserHandler) writeError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrEmailTaken.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		unauthorized(c)
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}
