package controllers

import (
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/api/transport"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/gin-gonic/gin"
	"net/http"
)

type ScoreController struct {
	ledger *competition.Ledger
	board  *competition.Leaderboard
	authn  *transport.Authenticator
}

func NewScoreController(ledger *competition.Ledger, board *competition.Leaderboard, authn *transport.Authenticator) *ScoreController {
	return &ScoreController{ledger: ledger, board: board, authn: authn}
}

func (c *ScoreController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/scores")

	group.GET("", c.getAll)
	group.GET("/leaderboard", c.leaderboard)
	group.GET("/team/:teamId", c.byTeam)

	admin := group.Group("", c.authn.Required(), transport.RequireRole(storage.RoleAdmin))
	admin.POST("", c.create)
	admin.PUT("/:id", c.update)
	admin.DELETE("/:id", c.delete)
}

// @Summary List scores, newest first
// @Tags Scores
// @Produce json
// @Success 200 {object} models.Response{data=[]models.ScoreResponse}
// @Router /api/scores [get]
func (c *ScoreController) getAll(g *gin.Context) {
	entries, err := c.ledger.List(g.Request.Context())
	if err != nil {
		fail(g, "SCORE", err)
		return
	}
	respondScores(g, entries)
}

// @Summary Ranked leaderboard
// @Description Rows are ordered by total score, then earliest last score, then team id. Ranks are sequential.
// @Tags Scores
// @Produce json
// @Param limit query int false "Return only the top N rows"
// @Success 200 {object} models.Response{data=[]models.LeaderboardRowResponse}
// @Router /api/scores/leaderboard [get]
func (c *ScoreController) leaderboard(g *gin.Context) {
	limit, ok := queryInt(g, "limit")
	if !ok {
		return
	}
	rows, err := c.board.Rows(g.Request.Context())
	if err != nil {
		fail(g, "LEADERBOARD", err)
		return
	}
	if limit != nil && *limit > 0 && *limit < len(rows) {
		rows = rows[:*limit]
	}
	g.JSON(http.StatusOK, models.Success(models.TransformRows(rows)))
}

// @Summary Scores of one team
// @Tags Scores
// @Produce json
// @Param teamId path int true "Team ID"
// @Success 200 {object} models.Response{data=[]models.ScoreResponse}
// @Failure 404 {object} models.Response
// @Router /api/scores/team/{teamId} [get]
func (c *ScoreController) byTeam(g *gin.Context) {
	teamID, ok := pathID(g, "teamId")
	if !ok {
		return
	}
	entries, err := c.ledger.ListByTeam(g.Request.Context(), teamID)
	if err != nil {
		fail(g, "SCORE", err)
		return
	}
	respondScores(g, entries)
}

func respondScores(g *gin.Context, entries []competition.ScoreEntry) {
	res := make([]models.ScoreResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, models.TransformScoreEntry(e))
	}
	g.JSON(http.StatusOK, models.Success(res))
}

// @Security BearerAuth
// @Summary Award points to a team
// @Tags Scores
// @Accept json
// @Produce json
// @Param score body models.ScoreCreateRequest true "Award"
// @Success 201 {object} models.Response{data=models.ScoreResponse}
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/scores [post]
func (c *ScoreController) create(g *gin.Context) {
	var req models.ScoreCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("SCORE: invalid award request: %v", err)
		badRequest(g, "invalid request")
		return
	}
	if req.TeamID == nil || req.Points == nil {
		badRequest(g, "team_id and points are required")
		return
	}
	score, err := c.ledger.Award(g.Request.Context(), req.ToAward())
	if err != nil {
		fail(g, "SCORE", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(models.TransformScoreEntry(competition.ScoreEntry{Score: score})))
}

// @Security BearerAuth
// @Summary Update a score
// @Tags Scores
// @Accept json
// @Produce json
// @Param id path int true "Score ID"
// @Param score body models.ScoreUpdateRequest true "Changes"
// @Success 200 {object} models.Response{data=models.ScoreResponse}
// @Failure 404 {object} models.Response
// @Router /api/scores/{id} [put]
func (c *ScoreController) update(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.ScoreUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	score, err := c.ledger.Update(g.Request.Context(), id, req.ToChange())
	if err != nil {
		fail(g, "SCORE", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformScoreEntry(competition.ScoreEntry{Score: score})))
}

// @Security BearerAuth
// @Summary Delete a score
// @Tags Scores
// @Produce json
// @Param id path int true "Score ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/scores/{id} [delete]
func (c *ScoreController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if err := c.ledger.Delete(g.Request.Context(), id); err != nil {
		fail(g, "SCORE", err)
		return
	}
	g.JSON(http.StatusOK, models.Message("score deleted"))
}
