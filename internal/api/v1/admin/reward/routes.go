package reward

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/rewards")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/image", h.UploadImage)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
	admin.GET("/upload/token", h.UploadToken)
}
