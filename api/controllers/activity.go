package controllers

import (
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/gin-gonic/gin"
	"net/http"
)

type ActivityController struct {
	recorder *competition.Recorder
	board    *competition.Leaderboard
}

func NewActivityController(recorder *competition.Recorder, board *competition.Leaderboard) *ActivityController {
	return &ActivityController{recorder: recorder, board: board}
}

func (c *ActivityController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/activity")

	group.GET("", c.feed)
	group.GET("/stats", c.stats)
	group.GET("/team/:teamId", c.teamFeed)
}

// @Summary Activity feed, newest first
// @Tags Activity
// @Produce json
// @Param limit query int false "Entries to return (default 20, max 100)"
// @Success 200 {object} models.Response{data=[]models.ActivityResponse}
// @Router /api/activity [get]
func (c *ActivityController) feed(g *gin.Context) {
	limit, ok := queryInt(g, "limit")
	if !ok {
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	entries, err := c.recorder.Feed(g.Request.Context(), n)
	if err != nil {
		fail(g, "ACTIVITY", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(transformFeed(entries)))
}

// @Summary Activity of one team, newest first
// @Tags Activity
// @Produce json
// @Param teamId path int true "Team ID"
// @Param limit query int false "Entries to return (default 10, max 100)"
// @Success 200 {object} models.Response{data=[]models.ActivityResponse}
// @Failure 404 {object} models.Response
// @Router /api/activity/team/{teamId} [get]
func (c *ActivityController) teamFeed(g *gin.Context) {
	teamID, ok := pathID(g, "teamId")
	if !ok {
		return
	}
	limit, ok := queryInt(g, "limit")
	if !ok {
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	entries, err := c.recorder.TeamFeed(g.Request.Context(), teamID, n)
	if err != nil {
		fail(g, "ACTIVITY", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(transformFeed(entries)))
}

func transformFeed(entries []competition.FeedEntry) []models.ActivityResponse {
	res := make([]models.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, models.TransformFeedEntry(e))
	}
	return res
}

// @Summary Competition totals
// @Tags Activity
// @Produce json
// @Success 200 {object} models.Response{data=models.StatsResponse}
// @Router /api/activity/stats [get]
func (c *ActivityController) stats(g *gin.Context) {
	stats, err := c.board.Stats(g.Request.Context())
	if err != nil {
		fail(g, "ACTIVITY", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformStats(stats)))
}
