// Package httperr maps service error kinds to transport statuses.
package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/apperr"
)

// JSON writes the error as {"message": ...} with the status implied by
// its kind; unknown errors become a plain 500.
func JSON(c echo.Context, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.KindValidation, apperr.KindUnsupportedState:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case apperr.KindAccessDenied:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case apperr.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
