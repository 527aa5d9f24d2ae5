package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dare4net/ast4-lesson-builder/db"
	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/play"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionNameInteractions = "interactions"

func replaceUpsert() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}

// mongoSaver persists a session's componentsState map as a single
// interaction document keyed by user and lesson.
type mongoSaver struct{}

func (mongoSaver) SaveInteraction(ctx context.Context, userID, lessonID string, states map[string]models.ComponentState, completed bool) error {
	opts := options.Update().SetUpsert(true)
	_, err := db.DB.Collection(CollectionNameInteractions).UpdateOne(ctx,
		bson.M{"user_id": userID, "lesson_id": lessonID},
		bson.M{"$set": bson.M{
			"components_state": states,
			"completed":        completed,
			"last_updated":     time.Now(),
		}},
		opts,
	)
	return err
}

// GetInteraction returns the saved interaction record for a user and lesson.
// No record is a 404, which the client treats as a fresh start.
func GetInteraction(c *gin.Context) {
	log.Println("GetInteraction")

	userID := c.Param("user_id")
	lessonID := c.Param("lesson_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var interaction models.InteractionRecord
	err := db.DB.Collection(CollectionNameInteractions).
		FindOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}).
		Decode(&interaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interaction not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, interaction)
}

// SaveInteraction upserts the full componentsState map a client has been
// tracking locally. Lets offline clients sync in one write.
func SaveInteraction(c *gin.Context) {
	log.Println("SaveInteraction")

	userID := c.Param("user_id")
	lessonID := c.Param("lesson_id")

	var req models.SaveInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := (mongoSaver{}).SaveInteraction(ctx, userID, lessonID, req.ComponentsState, req.Completed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteInteraction removes a user's saved state for a lesson so they can
// replay it from scratch.
func DeleteInteraction(c *gin.Context) {
	log.Println("DeleteInteraction")

	userID := c.Param("user_id")
	lessonID := c.Param("lesson_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.DB.Collection(CollectionNameInteractions).
		DeleteOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// loadSession rebuilds a playback session from the stored lesson and any
// saved interaction record. Each request gets its own session; the
// interaction document is the only shared state.
func loadSession(ctx context.Context, userID, lessonID string) (*play.Session, error) {
	var lesson models.Lesson
	err := db.DB.Collection(CollectionNameLessons).FindOne(ctx, bson.M{"id": lessonID}).Decode(&lesson)
	if err != nil {
		return nil, err
	}

	var saved map[string]models.ComponentState
	var interaction models.InteractionRecord
	err = db.DB.Collection(CollectionNameInteractions).
		FindOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}).
		Decode(&interaction)
	if err == nil {
		saved = interaction.ComponentsState
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	return play.NewSession(lesson, userID, saved, mongoSaver{}, nil), nil
}

// MountComponent returns a component's interaction state for rendering,
// creating and persisting a fresh one on first sight so randomized
// presentation order survives reloads.
func MountComponent(c *gin.Context) {
	log.Println("*** /play mount ***")

	lessonID := c.Param("lesson_id")
	componentID := c.Param("component_id")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := loadSession(ctx, userID, lessonID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	state, err := session.Mount(ctx, componentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"state":         state,
		"score":         session.Score().Score,
		"totalPossible": session.Score().TotalPossible,
	}
	if session.SaveErr() != nil {
		resp["warning"] = "Progress could not be saved"
	}
	c.JSON(http.StatusOK, resp)
}

// DispatchAction applies one user action to a component's state machine and
// returns the new state with the updated score. A save failure still returns
// the transition; the client just gets a warning.
func DispatchAction(c *gin.Context) {
	log.Println("*** /play action ***")

	lessonID := c.Param("lesson_id")
	componentID := c.Param("component_id")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	var action play.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := loadSession(ctx, userID, lessonID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	state, err := session.Dispatch(ctx, componentID, action)
	if err != nil {
		// Only a missing component is 404; everything else a machine rejects
		// is a malformed payload.
		if errors.Is(err, play.ErrComponentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	resp := gin.H{
		"state":         state,
		"score":         session.Score().Score,
		"totalPossible": session.Score().TotalPossible,
		"completed":     session.Completed(),
	}
	if session.SaveErr() != nil {
		resp["warning"] = "Progress could not be saved"
	}
	c.JSON(http.StatusOK, resp)
}
