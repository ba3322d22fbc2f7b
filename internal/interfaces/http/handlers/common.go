package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// RespondError translates an error into its HTTP representation.  AppErrors
// carry their own code and status; anything else becomes an opaque internal
// error so internals never leak to clients.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(apperrors.HTTPStatusForCode(appErr.Code), ErrorResponse{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    apperrors.ErrCodeInternal.String(),
		Message: apperrors.DefaultMessageForCode(apperrors.ErrCodeInternal),
	})
}

// RespondOK writes a 200 response with the given payload.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondAccepted writes a 202 response for asynchronous submissions.
func RespondAccepted(c *gin.Context, payload any) {
	c.JSON(http.StatusAccepted, payload)
}
