package evolution

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/physiorec/physiorec/internal/platform/auth"
	"github.com/physiorec/physiorec/pkg/pagination"
)

const notFoundDetail = "Evolution Record not found"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:patient_id/evolution_records/", h.Create)
	api.GET("/patients/:patient_id/evolution_records/", h.List)
	api.PUT("/evolution_records/:record_id", h.Replace)
	api.DELETE("/evolution_records/:record_id", h.Delete)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid "+name)
	}
	return id, nil
}

func mapCreateErr(err error) error {
	switch {
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case errors.Is(err, ErrProfessionalNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Professional not found")
	default:
		return err
	}
}

func (h *Handler) Create(c echo.Context) error {
	patientID, err := pathID(c, "patient_id")
	if err != nil {
		return err
	}
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.svc.Create(ctx, patientID, auth.UserIDFromContext(ctx), &rec); err != nil {
		return mapCreateErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := pathID(c, "patient_id")
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)

	ctx := c.Request().Context()
	recs, err := h.svc.List(ctx, patientID, auth.UserIDFromContext(ctx), pg.Limit, pg.Skip)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) Replace(c echo.Context) error {
	id, err := pathID(c, "record_id")
	if err != nil {
		return err
	}
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	updated, err := h.svc.Replace(ctx, id, auth.UserIDFromContext(ctx), &rec)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Professional not found")
		}
		return err
	}
	if updated == nil {
		return echo.NewHTTPError(http.StatusNotFound, notFoundDetail)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete returns the removed record itself, not a message envelope. That is
// the shape clients of this endpoint have always consumed.
func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c, "record_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	deleted, err := h.svc.Delete(ctx, id, auth.UserIDFromContext(ctx))
	if err != nil {
		return err
	}
	if deleted == nil {
		return echo.NewHTTPError(http.StatusNotFound, notFoundDetail)
	}
	return c.JSON(http.StatusOK, deleted)
}
