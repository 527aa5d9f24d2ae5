package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dare4net/ast4-lesson-builder/db"
	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionNameLessons = "lessons"

// Get all lessons
func GetLessons(c *gin.Context) {
	log.Println("GetLessons")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.DB.Collection(CollectionNameLessons).Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var lessons []models.Lesson
	if err = cursor.All(ctx, &lessons); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lessons)
}

// GetLesson returns one lesson; with ?userId= it also returns the user's
// interaction record so the viewer can resume in one round trip. A missing
// lesson is 404; a missing interaction just means a fresh start.
func GetLesson(c *gin.Context) {
	log.Println("GetLesson")

	lessonID := c.Param("id")
	userID := c.Query("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var lesson models.Lesson
	err := db.DB.Collection(CollectionNameLessons).FindOne(ctx, bson.M{"id": lessonID}).Decode(&lesson)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"lesson": lesson})
		return
	}

	var interaction models.InteractionRecord
	err = db.DB.Collection(CollectionNameInteractions).
		FindOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}).
		Decode(&interaction)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("Error finding interaction:", err)
		}
		c.JSON(http.StatusOK, gin.H{"lesson": lesson})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson, "interaction": interaction})
}

// CreateLesson
func CreateLesson(c *gin.Context) {
	log.Println("CreateLesson")

	var lesson models.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	for i := range lesson.Slides {
		if lesson.Slides[i].ID == "" {
			lesson.Slides[i].ID = uuid.New().String()
		}
		for j := range lesson.Slides[i].Components {
			if lesson.Slides[i].Components[j].ID == "" {
				lesson.Slides[i].Components[j].ID = uuid.New().String()
			}
		}
	}

	if err := models.ValidateLesson(lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.DB.Collection(CollectionNameLessons).InsertOne(ctx, lesson)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Println("Create created:", result.InsertedID)

	c.JSON(http.StatusOK, lesson)
}

// UpdateLesson replaces the stored document wholesale; slide and component
// edits always arrive as the full lesson.
func UpdateLesson(c *gin.Context) {
	log.Println("UpdateLesson")

	lessonID := c.Param("id")

	var lesson models.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson.ID = lessonID
	if err := models.ValidateLesson(lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.DB.Collection(CollectionNameLessons).ReplaceOne(ctx, bson.M{"id": lessonID}, lesson)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// DeleteLesson removes a lesson, its interaction records, and any uploaded
// image assets its components reference.
func DeleteLesson(c *gin.Context) {
	lessonID := c.Param("id")
	log.Println("*** /delete-lesson ***")
	log.Println("Lesson ID:", lessonID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var lesson models.Lesson
	err := db.DB.Collection(CollectionNameLessons).FindOne(ctx, bson.M{"id": lessonID}).Decode(&lesson)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding lesson"})
		}
		return
	}

	result, err := db.DB.Collection(CollectionNameLessons).DeleteOne(ctx, bson.M{"id": lessonID})
	if err != nil {
		log.Println("Error deleting lesson", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting lesson"})
		return
	}

	if result.DeletedCount != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lesson not found", "status_code": 404})
		return
	}

	// Delete uploaded assets referenced by image components.
	for _, slide := range lesson.Slides {
		for _, comp := range slide.Components {
			url, _ := comp.Props["url"].(string)
			if comp.Type == "image" && url != "" {
				deleteAssetByURL(url)
			}
		}
	}

	log.Println("Deleting interaction records for lesson")
	_, err = db.DB.Collection(CollectionNameInteractions).DeleteMany(ctx, bson.M{"lesson_id": lessonID})
	if err != nil {
		log.Println("Error deleting interactions", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting interactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully", "status_code": 200})
}

// ExportLesson returns the stored lesson as a downloadable JSON document in
// the interchange format.
func ExportLesson(c *gin.Context) {
	log.Println("ExportLesson")

	lessonID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var lesson models.Lesson
	err := db.DB.Collection(CollectionNameLessons).FindOne(ctx, bson.M{"id": lessonID}).Decode(&lesson)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+lesson.ID+".json")
	c.JSON(http.StatusOK, lesson)
}

// ImportLesson validates an uploaded lesson document and stores it. A
// document that fails validation is rejected whole and nothing stored is
// touched.
func ImportLesson(c *gin.Context) {
	log.Println("*** /lesson-import ***")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := models.ParseLesson(body)
	if err != nil {
		log.Println("Import rejected:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now()
	}
	lesson.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := replaceUpsert()
	_, err = db.DB.Collection(CollectionNameLessons).ReplaceOne(ctx, bson.M{"id": lesson.ID}, lesson, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Println("Imported lesson:", lesson.ID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": lesson})
}
