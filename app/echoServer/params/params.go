// Package params parses the path and query arguments shared by the
// controllers: numeric ids and the from/size pagination pair.
package params

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var (
	ErrBadID   = errors.New("invalid id")
	ErrBadPage = errors.New("invalid pagination: from must be >= 0 and size > 0")
)

func ID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadID
	}
	return id, nil
}

func UserID(c echo.Context) int64 {
	uid, _ := c.Get("user_id").(int64)
	return uid
}

// FromSize returns the pagination pair, defaulting to from=0 size=10.
func FromSize(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, ErrBadPage
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return 0, 0, ErrBadPage
		}
	}
	return from, size, nil
}
