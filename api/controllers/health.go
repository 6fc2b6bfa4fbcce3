package controllers

import (
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type HealthController struct {
	mode string
}

func NewHealthController(mode string) *HealthController {
	return &HealthController{mode: mode}
}

func (c *HealthController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/health", c.health)
}

// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /api/health [get]
func (c *HealthController) health(g *gin.Context) {
	g.JSON(http.StatusOK, models.HealthResponse{
		Success:   true,
		Message:   "Podium API is running",
		Mode:      c.mode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
