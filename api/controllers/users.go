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

type UserController struct {
	accounts *competition.Accounts
	authn    *transport.Authenticator
}

func NewUserController(accounts *competition.Accounts, authn *transport.Authenticator) *UserController {
	return &UserController{accounts: accounts, authn: authn}
}

func (c *UserController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/users", c.authn.Required())

	group.GET("", c.getAll)
	group.GET("/:id", c.get)
	group.POST("", transport.RequireRole(storage.RoleAdmin), c.create)
	group.PUT("/:id", transport.RequireRole(storage.RoleAdmin), c.update)
	group.DELETE("/:id", transport.RequireRole(storage.RoleAdmin), c.delete)
}

// @Security BearerAuth
// @Summary List users with their team
// @Tags Users
// @Produce json
// @Success 200 {object} models.Response{data=[]models.UserResponse}
// @Router /api/users [get]
func (c *UserController) getAll(g *gin.Context) {
	entries, err := c.accounts.List(g.Request.Context())
	if err != nil {
		fail(g, "USER", err)
		return
	}
	res := make([]models.UserResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, models.TransformUserEntry(e))
	}
	g.JSON(http.StatusOK, models.Success(res))
}

// @Security BearerAuth
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response{data=models.UserResponse}
// @Failure 404 {object} models.Response
// @Router /api/users/{id} [get]
func (c *UserController) get(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	entry, err := c.accounts.Get(g.Request.Context(), id)
	if err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformUserEntry(*entry)))
}

// @Security BearerAuth
// @Summary Create a user with any role
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "User"
// @Success 201 {object} models.Response{data=models.UserResponse}
// @Failure 400 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/users [post]
func (c *UserController) create(g *gin.Context) {
	var req models.RegisterRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("USER: invalid create user request: %v", err)
		badRequest(g, "invalid request")
		return
	}
	user, err := c.accounts.Create(g.Request.Context(), req.ToRegistration())
	if err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(models.TransformUserFromStorage(user)))
}

// @Security BearerAuth
// @Summary Update a user
// @Description team_id 0 removes the user from its team.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body models.UserUpdateRequest true "Changes"
// @Success 200 {object} models.Response{data=models.UserResponse}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/users/{id} [put]
func (c *UserController) update(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	var req models.UserUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "invalid request")
		return
	}
	user, err := c.accounts.Update(g.Request.Context(), id, req.ToChange())
	if err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(models.TransformUserFromStorage(user)))
}

// @Security BearerAuth
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /api/users/{id} [delete]
func (c *UserController) delete(g *gin.Context) {
	id, ok := pathID(g, "id")
	if !ok {
		return
	}
	if err := c.accounts.Delete(g.Request.Context(), id); err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusOK, models.Message("user deleted"))
}
