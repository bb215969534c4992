package patient

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/physiorec/physiorec/internal/platform/auth"
	"github.com/physiorec/physiorec/internal/platform/httpx"
	"github.com/physiorec/physiorec/pkg/pagination"
)

var filterParams = []string{
	"full_name", "age", "gender", "profession", "marital_status", "place_of_birth",
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/", h.Create)
	api.GET("/patients/", h.List)
	api.GET("/patients/:patient_id", h.Get)
	api.PATCH("/patients/:patient_id", h.Update)
	api.DELETE("/patients/:patient_id", h.Delete)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("patient_id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid patient_id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	p, err := h.svc.Create(ctx, auth.UserIDFromContext(ctx), in)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := h.svc.Get(ctx, id, auth.UserIDFromContext(ctx))
	if err != nil {
		return err
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	filters := map[string]string{}
	for _, name := range filterParams {
		if v := c.QueryParam(name); v != "" {
			filters[name] = v
		}
	}

	ctx := c.Request().Context()
	patients, err := h.svc.List(ctx, auth.UserIDFromContext(ctx), filters, pg.Limit, pg.Skip)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	p, err := h.svc.Update(ctx, id, auth.UserIDFromContext(ctx), in)
	if err != nil {
		return err
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found.")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := h.svc.Delete(ctx, id, auth.UserIDFromContext(ctx))
	if err != nil {
		return err
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found.")
	}
	return c.JSON(http.StatusOK, httpx.Message{Message: "Task has been deleted successfully."})
}
