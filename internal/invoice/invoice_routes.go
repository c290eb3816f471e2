package invoice

import (
	"go-worksuite/internal/access"
	"go-worksuite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	resolver middleware.CallerResolver,
	policy access.Enforcer,
) {
	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		invoices.GET("", middleware.Authorize(policy, access.ResourceInvoice, access.ActionRead), handler.GetAll)
		invoices.GET("/:id", middleware.Authorize(policy, access.ResourceInvoice, access.ActionRead), handler.GetById)
		invoices.POST("", middleware.Authorize(policy, access.ResourceInvoice, access.ActionCreate), handler.Create)
		invoices.PATCH("/:id/status", middleware.Authorize(policy, access.ResourceInvoice, access.ActionUpdate), handler.UpdateStatus)
		invoices.DELETE("/:id", middleware.Authorize(policy, access.ResourceInvoice, access.ActionDelete), handler.Delete)
	}
}
