package handlers

import (
	"net/http"

	"github.com/dare4net/ast4-lesson-builder/registry"
	"github.com/gin-gonic/gin"
)

func SetUpRoutes(r *gin.Engine) {

	// Lessons
	lessonRoutes := r.Group("/lesson")
	{
		lessonRoutes.GET("/:id", GetLesson)
		lessonRoutes.POST("/", CreateLesson)
		lessonRoutes.PUT("/:id", UpdateLesson)
		lessonRoutes.DELETE("/:id", DeleteLesson)
		lessonRoutes.GET("/:id/export", ExportLesson)
	}

	// Get all lessons
	r.GET("/lessons", GetLessons)

	// Import a lesson document
	r.POST("/lesson-import", ImportLesson)

	// Import a PDF as an image-slide lesson
	r.POST("/import-pdf", ImportPDFAsLesson)

	// Component type catalog for the editor palette
	r.GET("/component-definitions", func(c *gin.Context) {
		c.JSON(http.StatusOK, registry.Definitions())
	})

	// Interaction state
	interactionRoutes := r.Group("/interaction/:user_id/:lesson_id")
	{
		interactionRoutes.GET("/", GetInteraction)
		interactionRoutes.POST("/", SaveInteraction)
		interactionRoutes.DELETE("/", DeleteInteraction)
	}

	// Playback
	playRoutes := r.Group("/play/:lesson_id/component/:component_id")
	{
		playRoutes.GET("/", MountComponent)
		playRoutes.POST("/action", DispatchAction)
	}

	// Lessons a user has started
	r.GET("/user-lessons/:user_id", GetUserLessons)

	// AI component generation
	r.POST("/generate-quiz", GenerateQuizComponent)
	r.POST("/generate-flashcards", GenerateFlashcardsComponent)

	// Image uploads for the editor
	r.POST("/upload-asset", UploadAsset)

	// test
	r.GET("/test", Test)
}
