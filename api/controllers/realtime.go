package controllers

import (
	"github.com/Ahmedouyahya/Podium-de-concours/realtime"
	"github.com/gin-gonic/gin"
)

type RealtimeController struct {
	hub *realtime.Hub
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

func (c *RealtimeController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/ws", c.serve)
}

// @Summary Websocket for leaderboard change hints
// @Description Send {"action":"join_leaderboard"} to receive {"event":"leaderboard_updated"} frames.
// @Tags Realtime
// @Router /ws [get]
func (c *RealtimeController) serve(g *gin.Context) {
	c.hub.ServeWS(g.Writer, g.Request)
}
