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

type TeamController struct {
	roster *competition.Roster
	board  *competition.Leaderboard
	authn  *transport.Authenticator
}

func NewTeamController(roster *competition.Roster, board *competition.Leaderboard, authn *transport.Authenticator) *TeamController {
	return &TeamController{roster: roster, board: board, authn: authn}
}

func (c *TeamController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/teams")

	group.GET("", c.getAll)
	group.GET("/:id", c.get)
	group.POST("", c.authn.Required(), c.create)
	group.PUT("/:id", c.authn.Required(), c.update)
	group.DELETE("/:id", c.authn.Required(), transport.RequireRole(storage.RoleAdmin), c.delete)

	group.GET("/:id/members", c.authn.Optional(), c.members)
	group.POST("/:id/members", c.authn.Required(), c.addMember)
	group.DELETE("/:id/members/:userId", c.authn.Required(), c.removeMember)
}

// @Summary List teams in leaderboard order
// @Tags Teams
// @Produce json
// @Success 200 {object} models.Response{data=[]models.LeaderboardRowResponse}
// @Router /api/teams [get]
func (c *TeamController) getAll(g *gin.Context) {
	rows, err := c.board.Rows(g.Request.Context())
	if err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformRows(rows)))
}

// @Summary Get a team with its standing
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Response{data=models.LeaderboardRowResponse}
// @Failure 404 {object} models.Response
// @Router /api/teams/{id} [get]
func (c *TeamController) get(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	row, err := c.board.Standing(g.Request.Context(), id)
	if err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformRow(*row)))
}

// @Security BearerAuth
// @Summary Create a team led by the caller
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body models.TeamCreateRequest true "Team"
// @Success 201 {object} models.Response{data=models.TeamResponse}
// @Failure 400 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/teams [post]
func (c *TeamController) create(g *gin.Context) {
	var req models.TeamCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("TEAM: invalid create team request: %v", err)
		badRequest(g, "invalid request")
		return
	}
	team, err := c.roster.CreateTeam(g.Request.Context(), transport.CurrentActor(g), req.ToInput())
	if err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(models.TransformTeamFromStorage(team)))
}

// @Security BearerAuth
// @Summary Update a team
// @Description Admin or team leader. Only an admin can change leader_id.
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body models.TeamUpdateRequest true "Changes"
// @Success 200 {object} models.Response{data=models.TeamResponse}
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/teams/{id} [put]
func (c *TeamController) update(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.TeamUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	team, err := c.roster.UpdateTeam(g.Request.Context(), transport.CurrentActor(g), id, req.ToChange())
	if err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformTeamFromStorage(team)))
}

// @Security BearerAuth
// @Summary Delete a team with its scores and submissions
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/teams/{id} [delete]
func (c *TeamController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if err := c.roster.DeleteTeam(g.Request.Context(), transport.CurrentActor(g), id); err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusOK, models.Message("team deleted"))
}

// @Summary List team members
// @Description Emails are only included for admins and members of the team.
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Response{data=[]models.MemberResponse}
// @Failure 404 {object} models.Response
// @Router /api/teams/{id}/members [get]
func (c *TeamController) members(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	members, err := c.roster.Members(g.Request.Context(), id)
	if err != nil {
		fail(g, "TEAM", err)
		return
	}
	showEmail := canSeeEmails(g, id)
	res := make([]models.MemberResponse, 0, len(members))
	for _, m := range members {
		r := models.TransformMember(m)
		if !showEmail {
			r.Email = ""
		}
		res = append(res, r)
	}
	g.JSON(http.StatusOK, models.Success(res))
}

func canSeeEmails(g *gin.Context, teamID int) bool {
	user, ok := transport.CurrentUser(g)
	if !ok {
		return false
	}
	return user.Role == storage.RoleAdmin || (user.TeamID != nil && *user.TeamID == teamID)
}

// @Security BearerAuth
// @Summary Create a participant inside the team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param member body models.MemberCreateRequest true "Member"
// @Success 201 {object} models.Response{data=models.UserResponse}
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/teams/{id}/members [post]
func (c *TeamController) addMember(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.MemberCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	user, err := c.roster.AddMember(g.Request.Context(), transport.CurrentActor(g), id, req.ToNewMember())
	if err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(models.TransformUserFromStorage(user)))
}

// @Security BearerAuth
// @Summary Remove a member from the team
// @Description The user is detached, not deleted. The leader cannot be removed.
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Param userId path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/teams/{id}/members/{userId} [delete]
func (c *TeamController) removeMember(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	userID, ok := pathID(g, "userId")
	if !ok {
		return
	}
	if err := c.roster.RemoveMember(g.Request.Context(), transport.CurrentActor(g), id, userID); err != nil {
		fail(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusOK, models.Message("member removed"))
}
