package notification

import (
	"net/http"

	"go-worksuite/internal/access"
	"go-worksuite/internal/middleware"
	"go-worksuite/internal/shared/apperror"
	"go-worksuite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func callerOrAbort(c *gin.Context) (access.Caller, bool) {
	caller, ok := middleware.CallerFromGin(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing caller context", nil)
		c.Abort()
	}
	return caller, ok
}

func (h *Handler) GetAll(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	resp, err := h.service.GetAll(c.Request.Context(), caller, unreadOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	affected, err := h.service.MarkAllRead(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": affected}, nil)
}
