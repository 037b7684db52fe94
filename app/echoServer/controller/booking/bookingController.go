package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/httperr"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/params"
	bookingsvc "github.com/Wh1teW1nter/java-shareit/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	d, err := h.Svc.Create(c.Request().Context(), bookingsvc.CreateReq{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	}, params.UserID(c))
	if err != nil {
		h.Log.Error("booking create", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// PATCH /bookings/:id?approved=true|false
func (h *Controller) SetApproval(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}

	d, err := h.Svc.SetApproval(c.Request().Context(), id, approved, params.UserID(c))
	if err != nil {
		h.Log.Error("booking approval", "err", err, "id", id, "approved", approved)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// GET /bookings/:id
func (h *Controller) FindByID(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	d, err := h.Svc.FindByID(c.Request().Context(), id, params.UserID(c))
	if err != nil {
		h.Log.Error("booking find", "err", err, "id", id)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListForBooker(c echo.Context) error {
	state, from, size, err := listParams(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	out, err := h.Svc.FindForBooker(c.Request().Context(), state, params.UserID(c), from, size)
	if err != nil {
		h.Log.Error("booking list", "err", err, "state", state)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListForOwner(c echo.Context) error {
	state, from, size, err := listParams(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	out, err := h.Svc.FindForOwner(c.Request().Context(), state, params.UserID(c), from, size)
	if err != nil {
		h.Log.Error("booking owner list", "err", err, "state", state)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func listParams(c echo.Context) (bookingsvc.State, int, int, error) {
	token := c.QueryParam("state")
	if token == "" {
		token = string(bookingsvc.StateAll)
	}
	state, err := bookingsvc.ParseState(token)
	if err != nil {
		return "", 0, 0, err
	}
	from, size, err := params.FromSize(c)
	if err != nil {
		return "", 0, 0, apperr.Validation(err.Error())
	}
	return state, from, size, nil
}
