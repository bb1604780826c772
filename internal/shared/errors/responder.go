package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps domain or application errors to a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder writes problem responses, asking each mapper in turn to
// classify an error before falling back to a generic 500.
type ChainedResponder struct {
	baseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		baseURI: baseURI,
		mappers: mappers,
		logger:  slog.Default().With("component", "problem_responder"),
	}
}

// WithLogger replaces the logger used for server-side failures.
func (r *ChainedResponder) WithLogger(logger *slog.Logger) *ChainedResponder {
	if logger != nil {
		r.logger = logger.With("component", "problem_responder")
	}
	return r
}

// Respond sends problem with the problem+json content type.
func (r *ChainedResponder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError classifies err and responds. Errors that are already a
// ProblemDetail pass through; unclassified errors become an opaque 500.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.log(c, problem, err)
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if !errors.As(err, &problem) {
		problem = ErrInternal
	}
	r.log(c, problem, err)
	r.Respond(c, problem)
}

func (r *ChainedResponder) log(c *gin.Context, problem ProblemDetail, err error) {
	if problem.Status < http.StatusInternalServerError || r.logger == nil {
		return
	}
	r.logger.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", problem.Status,
		"error", err,
	)
}
