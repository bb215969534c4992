package clinical

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/physiorec/physiorec/internal/platform/auth"
	"github.com/physiorec/physiorec/internal/platform/httpx"
	"github.com/physiorec/physiorec/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// routeConfig carries the per-entity URL segment and response strings. The
// strings are part of the published contract and are reproduced verbatim,
// trailing periods included.
type routeConfig struct {
	segment        string
	patchNotFound  string
	deleteNotFound string
	deletedMessage string
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	registerRecordRoutes(api, h.svc.gate, h.svc.Histories, routeConfig{
		segment:        "clinical_history",
		patchNotFound:  "Clinical History not found.",
		deleteNotFound: "Clinical History not found.",
		deletedMessage: "Clinical history has been deleted successfully.",
	})
	registerRecordRoutes(api, h.svc.gate, h.svc.Examinations, routeConfig{
		segment:        "clinical_examination",
		patchNotFound:  "Clinical Examination not found",
		deleteNotFound: "Clinical Examination not found.",
		deletedMessage: "Clinical examination has been deleted successfully.",
	})
	registerRecordRoutes(api, h.svc.gate, h.svc.CompExams, routeConfig{
		segment:        "complementary_exams",
		patchNotFound:  "Complementary Exams not found.",
		deleteNotFound: "Complementary Exams not found.",
		deletedMessage: "Complementary exams has been deleted successfully.",
	})
	registerRecordRoutes(api, h.svc.gate, h.svc.Diagnoses, routeConfig{
		segment:        "physiotherapy_diagnosis",
		patchNotFound:  "Physiotherapy Diagnosis not found.",
		deleteNotFound: "Physiotherapy Diagnosis not found",
		deletedMessage: "Physiotherapy diagnosis has been deleted successfully.",
	})
	registerRecordRoutes(api, h.svc.gate, h.svc.Prognoses, routeConfig{
		segment:        "prognosis",
		patchNotFound:  "Prognosis not found.",
		deleteNotFound: "Prognosis not found.",
		deletedMessage: "Prognosis has been deleted successfully.",
	})
	registerRecordRoutes(api, h.svc.gate, h.svc.Plans, routeConfig{
		segment:        "treatment_plan",
		patchNotFound:  "Treatment Plan not found.",
		deleteNotFound: "Treatment Plan not found.",
		deletedMessage: "Treatment plan has been deleted successfully.",
	})
}

func registerRecordRoutes[T any](api *echo.Group, g Gate, store Store[T], cfg routeConfig) {
	api.POST("/patients/:patient_id/"+cfg.segment+"/", createRecord(g, store))
	api.GET("/patients/:patient_id/"+cfg.segment+"/", listRecords(g, store))
	api.PATCH("/"+cfg.segment+"/:id", updateRecord(store, cfg))
	api.DELETE("/"+cfg.segment+"/:id", deleteRecord(store, cfg))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid "+name)
	}
	return id, nil
}

func createRecord[T any](g Gate, store Store[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		patientID, err := pathID(c, "patient_id")
		if err != nil {
			return err
		}
		rec := new(T)
		if err := c.Bind(rec); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}

		ctx := c.Request().Context()
		if err := CreateRecord(ctx, g, store, patientID, auth.UserIDFromContext(ctx), rec); err != nil {
			if errors.Is(err, ErrPatientNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
			}
			return err
		}
		return c.JSON(http.StatusCreated, rec)
	}
}

func listRecords[T any](g Gate, store Store[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		patientID, err := pathID(c, "patient_id")
		if err != nil {
			return err
		}
		pg := pagination.FromContext(c)

		ctx := c.Request().Context()
		recs, err := ListRecords(ctx, g, store, patientID, auth.UserIDFromContext(ctx), pg.Limit, pg.Skip)
		if err != nil {
			if errors.Is(err, ErrPatientNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
			}
			return err
		}
		return c.JSON(http.StatusOK, recs)
	}
}

func updateRecord[T any](store Store[T], cfg routeConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		rec := new(T)
		if err := c.Bind(rec); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}

		ctx := c.Request().Context()
		updated, err := store.Update(ctx, id, auth.UserIDFromContext(ctx), rec)
		if err != nil {
			return err
		}
		if updated == nil {
			return echo.NewHTTPError(http.StatusNotFound, cfg.patchNotFound)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

func deleteRecord[T any](store Store[T], cfg routeConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		deleted, err := store.Delete(ctx, id, auth.UserIDFromContext(ctx))
		if err != nil {
			return err
		}
		if deleted == nil {
			return echo.NewHTTPError(http.StatusNotFound, cfg.deleteNotFound)
		}
		return c.JSON(http.StatusOK, httpx.Message{Message: cfg.deletedMessage})
	}
}
