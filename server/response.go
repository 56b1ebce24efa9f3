package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/convokit/errors"
)

// RespondWithError aborts the request with err rendered as an ErrorResponse.
// Bodies over the size limit answer 413 and expired deadlines 504; errors
// that are not AppErrors become 500. Server-side failures are attached to
// the gin context.
func RespondWithError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

func toAppError(err error) *apperrors.AppError {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("Request body exceeds %d bytes.", tooLarge.Limit),
			http.StatusRequestEntityTooLarge).WithCause(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("annotate").WithCause(err)
	}
	return apperrors.Wrap(err)
}
