package travelordersserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	travelapp "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/application"
	userapp "github.com/Apurer/go-gin-travel-orders/internal/domains/users/application"
	apierrors "github.com/Apurer/go-gin-travel-orders/internal/shared/errors"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

const (
	msgInvalidData       = "Os dados fornecidos são inválidos."
	msgInvalidDates      = "Data de volta não pode ser antes da ida."
	msgOrderNotFound     = "Pedido de viagem não encontrado."
	msgUserNotFound      = "Usuário não encontrado."
	msgAccessDenied      = "Acesso negado."
	msgUnauthenticated   = "Não autenticado."
	msgInvalidCreds      = "Credenciais inválidas"
	msgInvalidTransition = "Transição de status não permitida."
	msgEmailTaken        = "O email já está em uso."
	msgInternal          = "Erro interno do servidor."
)

var responder = apierrors.NewChainedResponder("",
	mapValidationError,
	mapAuthError,
	mapNotFoundError,
	mapConflictError,
	mapInternalError,
)

// SetProblemLogger routes server-side failures to logger.
func SetProblemLogger(logger *slog.Logger) {
	responder.WithLogger(logger)
}

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}

func respondMalformed(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func mapValidationError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, travelapp.ErrInvalidDates) {
		return apierrors.NewValidationProblem(map[string]string{"return_date": msgInvalidDates}).
			WithDetail(msgInvalidDates), true
	}
	var fieldErr *apierrors.FieldError
	if errors.As(err, &fieldErr) {
		return apierrors.NewValidationProblem(map[string]string{fieldErr.Field: fieldErr.Err.Error()}).
			WithDetail(msgInvalidData), true
	}
	if errors.Is(err, travelapp.ErrInvalidInput) || errors.Is(err, userapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(msgInvalidData), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapAuthError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail(msgInvalidCreds), true
	case errors.Is(err, principal.ErrUnauthenticated):
		return apierrors.ErrUnauthorized.WithDetail(msgUnauthenticated), true
	case errors.Is(err, principal.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(msgAccessDenied), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapNotFoundError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, travelapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(msgOrderNotFound), true
	case errors.Is(err, userapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(msgUserNotFound), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapConflictError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, travelapp.ErrInvalidStatusTransition):
		return apierrors.ErrConflict.WithDetail(msgInvalidTransition), true
	case errors.Is(err, userapp.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithDetail(msgEmailTaken), true
	}
	return apierrors.ProblemDetail{}, false
}

// Unmapped errors never leak their text to clients.
func mapInternalError(error) (apierrors.ProblemDetail, bool) {
	return apierrors.ErrInternal.WithDetail(msgInternal), true
}
