package controllers

import (
	"errors"
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// fail maps a domain error to its HTTP status. Unexpected errors are logged
// with tag and answered with a generic 500.
func fail(g *gin.Context, tag string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, competition.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, competition.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, competition.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logging.Log.Errorf("%s: %s %s failed: %v", tag, g.Request.Method, g.Request.URL.Path, err)
		g.JSON(status, models.Failure("internal server error"))
		return
	}
	logging.Log.Debugf("%s: %s %s rejected: %v", tag, g.Request.Method, g.Request.URL.Path, err)
	g.JSON(status, models.Failure(err.Error()))
}

func badRequest(g *gin.Context, msg string) {
	g.JSON(http.StatusBadRequest, models.Failure(msg))
}

func pathID(g *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(g.Param(name))
	if err != nil || id <= 0 {
		badRequest(g, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt returns nil when the parameter is absent.
func queryInt(g *gin.Context, name string) (*int, bool) {
	raw, ok := g.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(g, "invalid "+name)
		return nil, false
	}
	return &v, true
}
