package handler

import (
	"net/http"
	"time"

	"github.com/bulky/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	db      *persistence.Database
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now()}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports process liveness and database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "up"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}
