package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkravets/contacts_api/internal/middleware"
)

// registerHomeRoutes sets up liveness and readiness endpoints.
func registerHomeRoutes(r *gin.Engine, dbPool *pgxpool.Pool) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Readiness: verifies the database connection is usable.
	r.GET("/api/healthchecker", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Database ping failed: " + err.Error())
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error connecting to the database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the contacts API!"})
	})
}
