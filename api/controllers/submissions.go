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

type SubmissionController struct {
	submissions *competition.Submissions
	authn       *transport.Authenticator
}

func NewSubmissionController(submissions *competition.Submissions, authn *transport.Authenticator) *SubmissionController {
	return &SubmissionController{submissions: submissions, authn: authn}
}

func (c *SubmissionController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/submissions")

	group.GET("", c.getAll)
	group.GET("/:id", c.get)
	group.POST("", c.authn.Required(), c.create)
	group.PUT("/:id", c.authn.Required(), c.update)
	group.DELETE("/:id", c.authn.Required(), c.delete)
}

// @Summary List submissions, newest first
// @Tags Submissions
// @Produce json
// @Param team_id query int false "Filter by team"
// @Param challenge_id query int false "Filter by challenge"
// @Param user_id query int false "Filter by author"
// @Success 200 {object} models.Response{data=[]models.SubmissionResponse}
// @Router /api/submissions [get]
func (c *SubmissionController) getAll(g *gin.Context) {
	var filter storage.SubmissionFilter
	var ok bool
	if filter.TeamID, ok = queryInt(g, "team_id"); !ok {
		return
	}
	if filter.ChallengeID, ok = queryInt(g, "challenge_id"); !ok {
		return
	}
	if filter.UserID, ok = queryInt(g, "user_id"); !ok {
		return
	}

	entries, err := c.submissions.List(g.Request.Context(), filter)
	if err != nil {
		fail(g, "SUBMISSION", err)
		return
	}
	res := make([]models.SubmissionResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, models.TransformSubmissionEntry(e))
	}
	g.JSON(http.StatusOK, models.Success(res))
}

// @Summary Get a submission
// @Tags Submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Response{data=models.SubmissionResponse}
// @Failure 404 {object} models.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) get(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	entry, err := c.submissions.Get(g.Request.Context(), id)
	if err != nil {
		fail(g, "SUBMISSION", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformSubmissionEntry(*entry)))
}

// @Security BearerAuth
// @Summary Submit a solution for the caller's team
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission body models.SubmissionCreateRequest true "Submission"
// @Success 201 {object} models.Response{data=models.SubmissionResponse}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/submissions [post]
func (c *SubmissionController) create(g *gin.Context) {
	var req models.SubmissionCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("SUBMISSION: invalid create request: %v", err)
		badRequest(g, "invalid request")
		return
	}
	sub, err := c.submissions.Create(g.Request.Context(), transport.CurrentActor(g), req.ToInput())
	if err != nil {
		fail(g, "SUBMISSION", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(models.TransformSubmission(sub)))
}

// @Security BearerAuth
// @Summary Edit or review a submission
// @Description Authors edit their own submission. Only an admin can set status and feedback.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param submission body models.SubmissionUpdateRequest true "Changes"
// @Success 200 {object} models.Response{data=models.SubmissionResponse}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/submissions/{id} [put]
func (c *SubmissionController) update(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.SubmissionUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	sub, err := c.submissions.Update(g.Request.Context(), transport.CurrentActor(g), id, req.ToChange())
	if err != nil {
		fail(g, "SUBMISSION", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformSubmission(sub)))
}

// @Security BearerAuth
// @Summary Delete a submission
// @Tags Submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/submissions/{id} [delete]
func (c *SubmissionController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if err := c.submissions.Delete(g.Request.Context(), transport.CurrentActor(g), id); err != nil {
		fail(g, "SUBMISSION", err)
		return
	}
	g.JSON(http.StatusOK, models.Message("submission deleted"))
}
