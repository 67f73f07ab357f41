//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package rest implements the HTTP decision point.
//
// Endpoints:
//
//	POST /v1/decision  evaluate access, credit, and visibility for a context
//	GET  /v1/timeline  render the chronological schedule for a context
package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courseflow/accessengine/internal/logging"
	"github.com/courseflow/accessengine/pkg/decisionpoint"
	"github.com/courseflow/accessengine/pkg/engine"
)

var logger = logging.GetLogger("decisionpoint.rest")

// Server represents a REST decision point server.
type Server struct {
	echo *echo.Echo
}

// DecisionRequest is the POST /v1/decision request body.  A nil At means
// "now"; a nil CompletedAt means the user has not completed the assessment.
type DecisionRequest struct {
	Context     engine.Context `json:"context"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	At          *time.Time     `json:"at,omitempty"`
}

type handlers struct {
	engine *engine.Engine
}

func (h *handlers) decide(c echo.Context) error {
	var req DecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	if req.At != nil {
		now = *req.At
	}

	logger.Debugf("decision request for user %q at %s", req.Context.UserID, now)
	return c.JSON(http.StatusOK, h.engine.Decide(req.Context, req.CompletedAt, now))
}

func (h *handlers) timeline(c echo.Context) error {
	ctx := engine.Context{
		UserID:   c.QueryParam("userId"),
		GroupIDs: splitParam(c.QueryParam("groupIds")),
		Labels:   splitParam(c.QueryParam("labels")),
	}

	rows := h.engine.Timeline(ctx)
	if rows == nil {
		rows = []engine.Row{}
	}
	return c.JSON(http.StatusOK, rows)
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func newEcho(eng *engine.Engine) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	h := &handlers{engine: eng}
	e.POST("/v1/decision", h.decide)
	e.GET("/v1/timeline", h.timeline)

	return e
}

// CreateServer creates and starts a new REST decision point server.
func CreateServer(eng *engine.Engine, port int) (decisionpoint.Server, error) {
	e := newEcho(eng)

	// Start server in goroutine since e.Start() blocks
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	return &Server{
		echo: e,
	}, nil
}

// Stop gracefully stops the Server by shutting down the Echo HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
