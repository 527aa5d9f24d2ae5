package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dare4net/ast4-lesson-builder/db"
	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/play"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUserLessons lists every lesson a user has started, joining each
// interaction record to its lesson and re-deriving the score from the saved
// component states. Interactions whose lesson has since been deleted are
// skipped.
func GetUserLessons(c *gin.Context) {
	log.Println("*** /user-lessons ***")

	userID := c.Param("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.DB.Collection(CollectionNameInteractions).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var interactions []models.InteractionRecord
	if err = cursor.All(ctx, &interactions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := []models.UserLessonSummary{}
	for _, interaction := range interactions {
		var lesson models.Lesson
		err := db.DB.Collection(CollectionNameLessons).
			FindOne(ctx, bson.M{"id": interaction.LessonID}).
			Decode(&lesson)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("Error finding lesson for interaction:", err)
			}
			continue
		}

		summaries = append(summaries, models.UserLessonSummary{
			LessonID:      lesson.ID,
			Title:         lesson.Title,
			Description:   lesson.Description,
			Completed:     interaction.Completed,
			LastOpened:    interaction.LastUpdated,
			Score:         play.ReplayScore(lesson, interaction.ComponentsState),
			TotalPossible: play.LessonTotalPossible(lesson),
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": summaries})
}
