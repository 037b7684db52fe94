package request

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer/httperr"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/params"
	requestsvc "github.com/Wh1teW1nter/java-shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.Create(c.Request().Context(), req.Description, params.UserID(c))
	if err != nil {
		h.Log.Error("request create", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests
func (h *Controller) ListOwn(c echo.Context) error {
	out, err := h.Svc.Own(c.Request().Context(), params.UserID(c))
	if err != nil {
		h.Log.Error("request list own", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size=
func (h *Controller) ListOthers(c echo.Context) error {
	from, size, err := params.FromSize(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	out, err := h.Svc.Others(c.Request().Context(), params.UserID(c), from, size)
	if err != nil {
		h.Log.Error("request list others", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:id
func (h *Controller) FindByID(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.ByID(c.Request().Context(), id, params.UserID(c))
	if err != nil {
		h.Log.Error("request find", "err", err, "id", id)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
