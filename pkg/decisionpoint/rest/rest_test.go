//
//  Copyright © Courseflow Inc. All rights reserved.
//

package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labstack/echo/v4"

	"github.com/courseflow/accessengine/pkg/accessrule/parsers"
	"github.com/courseflow/accessengine/pkg/engine"
)

const testDoc = `
apiVersion: accessengine.io/v1
kind: AccessRuleSet
metadata:
  name: infra-exam
spec:
  rules:
    - appliesTo: base
      dateControl:
        releaseDate: "2024-03-14T00:01"
        dueDate: "2024-03-21T23:59"
        lateDeadlines:
          - date: "2024-03-23T23:59"
            credit: 80
    - appliesTo:
        individuals: [alice]
      dateControl:
        durationMinutes: 90
`

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	doc, err := parsers.Parse([]byte(testDoc))
	require.NoError(t, err)
	eng, err := engine.New(doc.Rules)
	require.NoError(t, err)
	return eng
}

func TestDecisionEndpoint(t *testing.T) {
	e := newEcho(testEngine(t))

	body := `{
	  "context": {"userId": "alice"},
	  "at": "2024-03-19T12:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/decision", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var decision engine.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.Equal(t, "open", decision.State)
	assert.Equal(t, 100.0, decision.CreditPercent)
	require.NotNil(t, decision.DurationMinutes)
	assert.Equal(t, 90, *decision.DurationMinutes)
}

func TestDecisionEndpointBadBody(t *testing.T) {
	e := newEcho(testEngine(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/decision", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimelineEndpoint(t *testing.T) {
	e := newEcho(testEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/timeline?userId=alice", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []engine.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Released", rows[0].Label)
	assert.Equal(t, "Due date", rows[1].Label)
	assert.Equal(t, "Late deadline", rows[2].Label)
}
