package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOrderMissing = errors.New("order missing")

func respond(t *testing.T, r *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/travel-orders/42", nil)

	r.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	r := NewChainedResponder("",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errOrderMissing) {
				return ErrNotFound.WithDetail("gone"), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return ErrInternal, true },
	)

	rec, problem := respond(t, r, fmt.Errorf("lookup: %w", errOrderMissing))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "gone", problem.Detail)
	assert.Equal(t, "/api/travel-orders/42", problem.Instance)
}

func TestChainedResponder_UnmappedErrorDoesNotLeak(t *testing.T) {
	r := NewChainedResponder("https://travel.example")

	rec, problem := respond(t, r, errors.New("dial tcp 10.0.0.5:5432: refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, problem.Detail)
	assert.Equal(t, "https://travel.example"+TypeInternal, problem.Type)
}

func TestChainedResponder_PassesProblemThrough(t *testing.T) {
	r := NewChainedResponder("")

	rec, problem := respond(t, r, ErrConflict.WithDetail("taken"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "taken", problem.Detail)
}

func TestNewValidationProblem(t *testing.T) {
	problem := NewValidationProblem(map[string]string{"destination": "required"})

	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, map[string]string{"destination": "required"}, problem.Extensions["fields"])
	assert.Nil(t, ErrValidation.Extensions, "template must not be mutated")
}

func TestInvalidField(t *testing.T) {
	sentinel := errors.New("invalid input")
	cause := errors.New("must not be empty")

	err := InvalidField(sentinel, "destination", cause)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "destination", fieldErr.Field)
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
}
