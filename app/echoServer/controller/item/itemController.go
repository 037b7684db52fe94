package item

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wh1teW1nter/java-shareit/app/echoServer/httperr"
	"github.com/Wh1teW1nter/java-shareit/app/echoServer/params"
	commentsvc "github.com/Wh1teW1nter/java-shareit/service/comment"
	itemsvc "github.com/Wh1teW1nter/java-shareit/service/item"
)

type Controller struct {
	Svc      itemsvc.Service
	Comments commentsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	draft := itemsvc.Draft{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}
	it, err := h.Svc.Create(c.Request().Context(), draft, params.UserID(c))
	if err != nil {
		h.Log.Error("item create", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	patch := itemsvc.Patch{Name: req.Name, Description: req.Description, Available: req.Available}
	it, err := h.Svc.Update(c.Request().Context(), patch, id, params.UserID(c))
	if err != nil {
		h.Log.Error("item update", "err", err, "id", id)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) FindByID(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	view, err := h.Svc.FindByID(c.Request().Context(), id, params.UserID(c))
	if err != nil {
		h.Log.Error("item find", "err", err, "id", id)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /items
func (h *Controller) ListByOwner(c echo.Context) error {
	from, size, err := params.FromSize(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	views, err := h.Svc.ListByOwner(c.Request().Context(), params.UserID(c), from, size)
	if err != nil {
		h.Log.Error("item list", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/search
func (h *Controller) Search(c echo.Context) error {
	from, size, err := params.FromSize(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		h.Log.Error("item search", "err", err)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		h.Log.Error("item delete", "err", err, "id", id)
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	comment, err := h.Comments.Add(c.Request().Context(), req.Text, id, params.UserID(c))
	if err != nil {
		h.Log.Error("comment add", "err", err, "item_id", id)
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}
