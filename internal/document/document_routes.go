package document

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
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		documents.GET("", middleware.Authorize(policy, access.ResourceDocument, access.ActionRead), handler.GetAll)
		documents.GET("/:id", middleware.Authorize(policy, access.ResourceDocument, access.ActionRead), handler.GetById)
		documents.POST("", middleware.Authorize(policy, access.ResourceDocument, access.ActionCreate), handler.Create)
		documents.DELETE("/:id", middleware.Authorize(policy, access.ResourceDocument, access.ActionDelete), handler.Delete)
	}
}
