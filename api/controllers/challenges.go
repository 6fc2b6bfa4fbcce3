package controllers

import (
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/api/transport"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/gin-gonic/gin"
	"net/http"
)

type ChallengeController struct {
	challenges *competition.Challenges
	authn      *transport.Authenticator
}

func NewChallengeController(challenges *competition.Challenges, authn *transport.Authenticator) *ChallengeController {
	return &ChallengeController{challenges: challenges, authn: authn}
}

func (c *ChallengeController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/challenges")

	group.GET("", c.getAll)
	group.GET("/:id", c.get)

	admin := group.Group("", c.authn.Required(), transport.RequireRole(storage.RoleAdmin))
	admin.POST("", c.create)
	admin.PUT("/:id", c.update)
	admin.DELETE("/:id", c.delete)
}

// @Summary List challenges
// @Tags Challenges
// @Produce json
// @Success 200 {object} models.Response{data=[]models.ChallengeResponse}
// @Router /api/challenges [get]
func (c *ChallengeController) getAll(g *gin.Context) {
	challenges, err := c.challenges.List(g.Request.Context())
	if err != nil {
		fail(g, "CHALLENGE", err)
		return
	}
	res := make([]models.ChallengeResponse, 0, len(challenges))
	for _, ch := range challenges {
		res = append(res, models.TransformChallengeFromStorage(ch))
	}
	g.JSON(http.StatusOK, models.Success(res))
}

// @Summary Get a challenge
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Response{data=models.ChallengeResponse}
// @Failure 404 {object} models.Response
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) get(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	challenge, err := c.challenges.Get(g.Request.Context(), id)
	if err != nil {
		fail(g, "CHALLENGE", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformChallengeFromStorage(challenge)))
}

// @Security BearerAuth
// @Summary Create a challenge
// @Description max_points defaults to 100 and difficulty to medium.
// @Tags Challenges
// @Accept json
// @Produce json
// @Param challenge body models.ChallengeCreateRequest true "Challenge"
// @Success 201 {object} models.Response{data=models.ChallengeResponse}
// @Failure 400 {object} models.Response
// @Router /api/challenges [post]
func (c *ChallengeController) create(g *gin.Context) {
	var req models.ChallengeCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	challenge, err := c.challenges.Create(g.Request.Context(), req.ToInput())
	if err != nil {
		fail(g, "CHALLENGE", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(models.TransformChallengeFromStorage(challenge)))
}

// @Security BearerAuth
// @Summary Update a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param challenge body models.ChallengeUpdateRequest true "Changes"
// @Success 200 {object} models.Response{data=models.ChallengeResponse}
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/challenges/{id} [put]
func (c *ChallengeController) update(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.ChallengeUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	challenge, err := c.challenges.Update(g.Request.Context(), id, req.ToChange())
	if err != nil {
		fail(g, "CHALLENGE", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformChallengeFromStorage(challenge)))
}

// @Security BearerAuth
// @Summary Delete a challenge
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/challenges/{id} [delete]
func (c *ChallengeController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if err := c.challenges.Delete(g.Request.Context(), id); err != nil {
		fail(g, "CHALLENGE", err)
		return
	}
	g.JSON(http.StatusOK, models.Message("challenge deleted"))
}
