package patient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/physiorec/physiorec/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func newHandlerContext(e *echo.Echo, method, target, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(auth.WithUser(req.Context(), userID, "user@example.com"))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"full_name":"Maria Aparecida","age":58}`
	c, rec := newHandlerContext(e, http.MethodPost, "/patients/", body, 10)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	got := rec.Body.String()
	if !strings.Contains(got, `"patient_id":1`) {
		t.Errorf("expected patient_id in body: %s", got)
	}
	if !strings.Contains(got, `"clinical_history":[]`) {
		t.Errorf("expected empty record lists: %s", got)
	}
	if strings.Contains(got, "user_id") {
		t.Errorf("owner must not be serialized: %s", got)
	}
}

func TestHandler_Create_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newHandlerContext(e, http.MethodPost, "/patients/", `{"full_name":"Maria"}`, 10)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %v", err)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newHandlerContext(e, http.MethodGet, "/patients/99", "", 10)
	c.SetParamNames("patient_id")
	c.SetParamValues("99")
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != "Patient not found" {
		t.Errorf("unexpected detail: %v", he.Message)
	}
}

func TestHandler_Get_ForeignUser(t *testing.T) {
	h, e := newTestHandler()
	seedPatient(t, h.svc, 20, "João Silva")

	c, _ := newHandlerContext(e, http.MethodGet, "/patients/1", "", 10)
	c.SetParamNames("patient_id")
	c.SetParamValues("1")
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("another user's patient must return 404, got %v", err)
	}
}

func TestHandler_List_PassesFilters(t *testing.T) {
	h, e := newTestHandler()
	seedPatient(t, h.svc, 10, "Maria Aparecida")
	seedPatient(t, h.svc, 10, "João Silva")

	c, rec := newHandlerContext(e, http.MethodGet, "/patients/?full_name=maria", "", 10)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Maria Aparecida") || strings.Contains(body, "João Silva") {
		t.Errorf("filter not applied: %s", body)
	}
}

func TestHandler_Update_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newHandlerContext(e, http.MethodPatch, "/patients/99", `{"age":60}`, 10)
	c.SetParamNames("patient_id")
	c.SetParamValues("99")
	err := h.Update(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != "Patient not found." {
		t.Errorf("unexpected detail: %v", he.Message)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, e := newTestHandler()
	seedPatient(t, h.svc, 10, "Maria Aparecida")

	c, rec := newHandlerContext(e, http.MethodDelete, "/patients/1", "", 10)
	c.SetParamNames("patient_id")
	c.SetParamValues("1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Task has been deleted successfully.") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	// deleted patients are gone for good
	c2, _ := newHandlerContext(e, http.MethodGet, "/patients/1", "", 10)
	c2.SetParamNames("patient_id")
	c2.SetParamValues("1")
	err := h.Get(c2)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %v", err)
	}
}

func TestHandler_Delete_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newHandlerContext(e, http.MethodDelete, "/patients/99", "", 10)
	c.SetParamNames("patient_id")
	c.SetParamValues("99")
	err := h.Delete(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != "Patient not found." {
		t.Errorf("unexpected detail: %v", he.Message)
	}
}
