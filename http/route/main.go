package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aakash/content-server/http/controller"
	middlewares "github.com/aakash/content-server/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1")
	{
		postRoutes := apiRoutes.Group("/posts")
		{
			postRoutes.POST("", ctrl.CreatePost)
			postRoutes.GET("", ctrl.ListPosts)
			postRoutes.GET("/top", ctrl.GetTopPosts)
			postRoutes.GET("/cursor", ctrl.GetCursorPosts)
			postRoutes.GET("/:id", ctrl.GetPost)
			postRoutes.PUT("/:id", ctrl.UpdatePost)
			postRoutes.DELETE("/:id", ctrl.DeletePost)

			postRoutes.POST("/:id/comments", ctrl.CreateComment)
			postRoutes.GET("/:id/comments", ctrl.ListComments)
		}

		commentRoutes := apiRoutes.Group("/comments")
		{
			commentRoutes.GET("/:id", ctrl.GetComment)
			commentRoutes.DELETE("/:id", ctrl.DeleteComment)
		}

		imageRoutes := apiRoutes.Group("/images")
		{
			imageRoutes.GET("/:id", ctrl.GetImage)
			imageRoutes.GET("/:id/content", ctrl.GetImageContent)
			imageRoutes.GET("/:id/url", ctrl.GetImageURL)
		}
	}

	return r
}
