package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/api/response"
	"github.com/pickmymaid/content-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to a row of the response table.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the same envelope successful responses use.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		outcome, msg, field := resolveError(err, log, c)
		if field != "" {
			_ = response.SendField(c, outcome, field, msg)
			return
		}
		_ = response.Send(c, outcome, msg, nil)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (response.Outcome, string, string) {
	// Echo's own errors (router 404/405, bind failures, body limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		outcome := response.ForStatus(he.Code)
		if msg, ok := he.Message.(string); ok && msg != "" {
			return outcome, msg, ""
		}
		return outcome, "", ""
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return response.BadRequest, ve.Field + " " + ve.Message, ve.Field
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		return response.BadRequest, "", ""
	case errors.Is(err, domain.ErrPasswordMismatch):
		return response.BadRequest, response.MsgPasswordsDiffer, "confirm_password"
	case errors.Is(err, domain.ErrInvalidFileType):
		return response.BadRequest, response.MsgInvalidFileType, ""
	case errors.Is(err, domain.ErrMissingFile):
		return response.BadRequest, response.MsgMissingFile, ""

	case errors.Is(err, domain.ErrUserExists):
		return response.Conflict, response.MsgUserExists, ""
	case errors.Is(err, domain.ErrResetAlreadySent):
		return response.Conflict, response.MsgResetPending, ""
	case errors.Is(err, domain.ErrSlugTaken):
		return response.Conflict, response.MsgSlugTaken, ""

	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound, response.MsgUserNotFound, ""
	case errors.Is(err, domain.ErrPostNotFound):
		return response.NotFound, response.MsgPostNotFound, ""
	case errors.Is(err, domain.ErrCommentNotFound):
		return response.NotFound, response.MsgCommentNotFound, ""
	case errors.Is(err, domain.ErrImageNotFound):
		return response.NotFound, response.MsgImageNotFound, ""

	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized, response.MsgWrongPassword, ""
	case errors.Is(err, domain.ErrInvalidToken):
		return response.Unauthorized, response.MsgInvalidToken, ""
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized, "", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return response.InternalServerError, "", ""
}
