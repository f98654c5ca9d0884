package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/utils"
)

var verboseErrors bool

// SetVerboseErrors toggles attaching internal error details to responses.
// Production deployments keep the generic bodies.
func SetVerboseErrors(v bool) {
	verboseErrors = v
}

// fail translates a service error into the HTTP error contract. Unexpected
// errors are logged with context; their details reach the client only when
// verbose errors are enabled.
func fail(c *gin.Context, err error, op string) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Str("path", c.Request.URL.Path).Msg("request failed")
		if verboseErrors {
			utils.ErrorWithDetails(c, status, "Internal server error", err.Error())
			return
		}
		utils.Error(c, status, "Internal server error")
		return
	}
	utils.Error(c, status, err.Error())
}

// badRequest reports a malformed or unbindable request body. The binding
// error itself is attached only when verbose errors are enabled.
func badRequest(c *gin.Context, err error) {
	if verboseErrors {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	utils.Error(c, http.StatusBadRequest, "Invalid request body")
}

// actor returns the authenticated identity for audit stamping.
func actor(c *gin.Context) string {
	return c.GetString("email")
}

// queryInt parses an integer query parameter, returning def when absent or
// malformed.
func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// queryBoolPtr parses an optional boolean query parameter; absence means no
// filter.
func queryBoolPtr(c *gin.Context, key string) *bool {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// queryFloatPtr parses an optional float query parameter.
func queryFloatPtr(c *gin.Context, key string) *float64 {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
