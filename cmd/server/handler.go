// In file: cmd/server/handler.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/prompt-optimizer/internal/api"
	"github.com/dileep-u-k/prompt-optimizer/internal/optimizer"
)

const healthPingTimeout = 2 * time.Second

// Handler serves the optimizer over HTTP. Every collaborator is injected so
// tests can substitute fakes.
type Handler struct {
	service       *optimizer.Service
	rdb           *redis.Client
	maxTextLength int
	build         BuildInfo
}

func NewHandler(service *optimizer.Service, rdb *redis.Client, maxTextLength int, build BuildInfo) *Handler {
	return &Handler{
		service:       service,
		rdb:           rdb,
		maxTextLength: maxTextLength,
		build:         build,
	}
}

// HandleOptimize analyzes one prompt and, when asked and configured, merges a
// model rewrite into the result.
func (h *Handler) HandleOptimize(c *gin.Context) {
	var req api.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(h.maxTextLength); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log.Debug("optimize", "bytes", len(req.Text), "rewrite", req.RequestRewrite, "request_id", requestID(c))
	var resp *api.OptimizeResponse = h.service.Analyze(c.Request.Context(), req.Text, req.RequestRewrite)
	c.JSON(http.StatusOK, resp)
}

// HandleHealth reports liveness. A redis outage degrades the service but
// does not make it unhealthy.
func (h *Handler) HandleHealth(c *gin.Context) {
	resp := api.HealthResponse{
		Status:  "ok",
		Redis:   "disabled",
		Rewrite: h.service.RewriteEnabled(),
	}
	if h.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			resp.Redis = "unavailable"
		} else {
			resp.Redis = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, h.build.Response())
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg, RequestID: requestID(c)})
}
