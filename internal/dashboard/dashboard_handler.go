package dashboard

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
	l := zap.L().Named("dashboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.handler")
	}
	return &Handler{service: service, logger: l}
}

func callerOrAbort(c *gin.Context) (access.Caller, bool) {
	caller, ok := middleware.CallerFromGin(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing caller context", nil)
		c.Abort()
	}
	return caller, ok
}

func (h *Handler) Summary(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), caller)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("dashboard request failed",
			zap.String("role", string(caller.Role)),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
