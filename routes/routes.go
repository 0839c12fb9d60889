package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/buzzbingo/bingo-backend/models"
)

// SetupRoutes wires the page and static-asset routes. The websocket and
// health endpoints are registered in main.
func SetupRoutes(r *gin.Engine, staticDir string) {
	r.Static("/static", staticDir)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "buzzword bingo: open /<room> to play")
	})

	// The room page; the client derives the room name from the path.
	r.GET("/:room", func(c *gin.Context) {
		room := c.Param("room")
		if !models.IsValidID(room) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room name"})
			return
		}
		c.File(filepath.Join(staticDir, "room.html"))
	})
}
