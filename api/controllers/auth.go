package controllers

import (
	"context"
	"errors"
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/api/transport"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/gin-gonic/gin"
	"net/http"
)

type AuthController struct {
	accounts *competition.Accounts
	board    *competition.Leaderboard
	issuer   *auth.Issuer
	authn    *transport.Authenticator
	limiter  *transport.RateLimiter
}

func NewAuthController(accounts *competition.Accounts, board *competition.Leaderboard, issuer *auth.Issuer,
	authn *transport.Authenticator, limiter *transport.RateLimiter) *AuthController {
	return &AuthController{accounts: accounts, board: board, issuer: issuer, authn: authn, limiter: limiter}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/auth")

	group.POST("/register", c.limiter.Middleware(), c.register)
	group.POST("/login", c.limiter.Middleware(), c.login)
	group.GET("/me", c.authn.Required(), c.me)
}

// @Summary Register a participant or leader account
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "Account"
// @Success 201 {object} models.Response{data=models.AuthResponse}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/auth/register [post]
func (c *AuthController) register(g *gin.Context) {
	var req models.RegisterRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("USER: invalid register request: %v", err)
		badRequest(g, "invalid request")
		return
	}

	user, err := c.accounts.Register(g.Request.Context(), req.ToRegistration())
	if err != nil {
		fail(g, "USER", err)
		return
	}
	res, err := c.session(g.Request.Context(), user, true)
	if err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusCreated, models.Success(res))
}

// @Summary Log in with username or email
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 400 {object} models.Response
// @Failure 401 {object} models.Response
// @Router /api/auth/login [post]
func (c *AuthController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		badRequest(g, "username and password are required")
		return
	}

	user, err := c.accounts.Authenticate(g.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, competition.ErrInvalidCredentials) {
			logging.Log.Infof("USER: failed login for %q from %s", req.Username, g.ClientIP())
		}
		fail(g, "USER", err)
		return
	}
	res, err := c.session(g.Request.Context(), user, true)
	if err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(res))
}

// @Security BearerAuth
// @Summary Current user and team standing
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 401 {object} models.Response
// @Router /api/auth/me [get]
func (c *AuthController) me(g *gin.Context) {
	user, _ := transport.CurrentUser(g)
	res, err := c.session(g.Request.Context(), user, false)
	if err != nil {
		fail(g, "USER", err)
		return
	}
	g.JSON(http.StatusOK, models.Success(res))
}

func (c *AuthController) session(ctx context.Context, user *storage.User, withToken bool) (*models.AuthResponse, error) {
	res := &models.AuthResponse{User: models.TransformUserFromStorage(user)}
	if user.TeamID != nil {
		row, err := c.board.Standing(ctx, *user.TeamID)
		if err != nil {
			logging.Log.Warnf("USER: no standing for team %d of %s: %v", *user.TeamID, user.Username, err)
		} else {
			standing := models.TransformRow(*row)
			res.Team = &standing
		}
	}
	if withToken {
		token, err := c.issuer.Issue(user)
		if err != nil {
			return nil, err
		}
		res.Token = token
	}
	return res, nil
}
