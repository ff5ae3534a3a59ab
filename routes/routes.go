package routes

import (
	"github.com/regedner/Research-Group-Portfolio/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Research Group Portfolio API is running",
			})
		})

		// Members
		members := api.Group("/members")
		{
			members.GET("", controllers.GetMembers)
			members.GET("/:id", controllers.GetMember)
			members.POST("", controllers.CreateMember)
			members.PUT("/:id", controllers.UpdateMember)
			members.DELETE("/:id", controllers.DeleteMember)
			members.POST("/:id/upload-photo", controllers.UploadMemberPhoto)

			// Ingestion from a bibliographic provider
			members.POST("/fetch", controllers.FetchMember)

			// Member publications
			members.GET("/:id/publications", controllers.GetMemberPublications)
			members.GET("/:id/publication-metadata", controllers.GetMemberPublicationMetadata)
			members.POST("/:id/publications", controllers.AddMemberPublication)
			members.GET("/:id/counts-by-year", controllers.GetMemberCountsByYear)

			// Member conferences
			members.GET("/:id/conferences", controllers.GetMemberConferences)
			members.POST("/:id/conferences", controllers.AddMemberConference)
		}

		// Publications
		publications := api.Group("/publications")
		{
			publications.PUT("/:id/tags", controllers.UpdatePublicationTags)
			publications.PUT("/:id/type", controllers.UpdatePublicationType)
		}

		// Conferences
		conferences := api.Group("/conferences")
		{
			conferences.GET("", controllers.GetConferences)
			conferences.GET("/:id", controllers.GetConference)
			conferences.PUT("/:id", controllers.UpdateConference)
			conferences.DELETE("/:id", controllers.DeleteConference)
		}

		// OpenAlex lookups
		api.GET("/openalex/work-types", controllers.GetWorkTypes)
	}
}
