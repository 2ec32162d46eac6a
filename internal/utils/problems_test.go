package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemDetail(t *testing.T) {
	problem := NewProblemDetail(
		ProblemTypeBadRequest,
		"Bad Request",
		400,
		"The request is malformed",
		"/arcapp/arc",
	)

	assert.Equal(t, ProblemTypeBadRequest, problem.Type)
	assert.Equal(t, "Bad Request", problem.Title)
	assert.Equal(t, 400, problem.Status)
	assert.Equal(t, "The request is malformed", problem.Detail)
	assert.Equal(t, "/arcapp/arc", problem.Instance)
	assert.NotEmpty(t, problem.Timestamp)

	// Verify timestamp is valid ISO 8601
	_, err := time.Parse(time.RFC3339, problem.Timestamp)
	assert.NoError(t, err)
}

func TestProblemDetailHelpers(t *testing.T) {
	tests := []struct {
		name           string
		constructor    func() *ProblemDetail
		expectedType   string
		expectedStatus int
	}{
		{
			name: "NotFound",
			constructor: func() *ProblemDetail {
				return NewNotFoundProblem("Page", "/nonexistent")
			},
			expectedType:   ProblemTypeResourceNotFound,
			expectedStatus: 404,
		},
		{
			name: "InternalServer",
			constructor: func() *ProblemDetail {
				return NewInternalServerProblem("Template missing", "/arcapp/arc")
			},
			expectedType:   ProblemTypeInternalServerError,
			expectedStatus: 500,
		},
		{
			name: "BadRequest",
			constructor: func() *ProblemDetail {
				return NewBadRequestProblem("Invalid query", "/welcome")
			},
			expectedType:   ProblemTypeBadRequest,
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := tt.constructor()
			assert.Equal(t, tt.expectedType, problem.Type)
			assert.Equal(t, tt.expectedStatus, problem.Status)
			assert.NotEmpty(t, problem.Title)
			assert.NotEmpty(t, problem.Detail)
		})
	}
}

func TestProblemFromError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "template error keeps user message",
			err:            apperrors.Template("Page could not be rendered").WithInternal("secret detail"),
			expectedStatus: 500,
			expectedDetail: "Page could not be rendered",
		},
		{
			name:           "not found",
			err:            apperrors.NotFound("Template not found"),
			expectedStatus: 404,
			expectedDetail: "Template not found",
		},
		{
			name:           "invalid input",
			err:            apperrors.InvalidInput("Bad path"),
			expectedStatus: 400,
			expectedDetail: "Bad path",
		},
		{
			name:           "plain error is hidden",
			err:            errors.New("open /etc/secret: permission denied"),
			expectedStatus: 500,
			expectedDetail: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := ProblemFromError(tt.err, "/arcapp/arc")
			assert.Equal(t, tt.expectedStatus, problem.Status)
			assert.Equal(t, tt.expectedDetail, problem.Detail)
			assert.NotContains(t, problem.Detail, "secret")
		})
	}
}

func TestSendProblem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/arcapp/arc", nil)
	c.Set(TraceIDKey, "trace-123456")

	SendProblem(c, NewInternalServerProblem("Page could not be rendered", ""))

	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.True(t, c.IsAborted())

	var response ProblemDetail
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, ProblemTypeInternalServerError, response.Type)
	assert.Equal(t, "Internal Server Error", response.Title)
	assert.Equal(t, "/arcapp/arc", response.Instance) // Should be set from request path
	assert.Equal(t, "trace-123456", response.TraceID)
}

func TestNotFoundHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/nonexistent", nil)

	NotFoundHandler(c)

	assert.Equal(t, 404, w.Code)

	var response ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, ProblemTypeResourceNotFound, response.Type)
	assert.Equal(t, "Page not found", response.Detail)
	assert.Equal(t, "/nonexistent", response.Instance)
}
