package profile

import (
	"context"
	"net/http"

	"go-worksuite/internal/shared/apperror"
	"go-worksuite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserEmailLookup resolves the auth user's email for the completion step,
// so the profile always mirrors the credential record's address.
type UserEmailLookup interface {
	EmailByUserID(ctx context.Context, userID string) (string, error)
}

// UserEmailFunc adapts a plain function to UserEmailLookup.
type UserEmailFunc func(ctx context.Context, userID string) (string, error)

func (f UserEmailFunc) EmailByUserID(ctx context.Context, userID string) (string, error) {
	return f(ctx, userID)
}

type Handler struct {
	service Service
	users   UserEmailLookup
	logger  *zap.Logger
}

func NewHandler(service Service, users UserEmailLookup, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("profile.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.handler")
	}
	return &Handler{service: service, users: users, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("profile request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Complete handles the one-time profile completion step after first login.
// It runs behind AuthMiddleware only: the caller has no profile yet, so the
// caller-resolving middleware cannot be used here.
func (h *Handler) Complete(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	email, err := h.users.EmailByUserID(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), userID, email, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
