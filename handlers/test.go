package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dare4net/ast4-lesson-builder/db"
	"github.com/gin-gonic/gin"
)

// Test is a health check: pings Mongo and reports status.
func Test(c *gin.Context) {
	log.Println("Test")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.DB.Client().Ping(ctx, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
