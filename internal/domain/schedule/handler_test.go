package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/domain/practitioner"
)

func newHandlerFixture(doctors ...*practitioner.Doctor) (*Handler, *echo.Echo) {
	svc := newTestService(&mockRoster{doctors: doctors}, nil)
	return NewHandler(svc), echo.New()
}

func TestHandler_CreateOverride(t *testing.T) {
	doctor := testDoctor("Dr. Adams", practitioner.PatternMWF)
	h, e := newHandlerFixture(doctor)

	body := fmt.Sprintf(`{"date":%q,"assigned_doctor_id":%q,"reason":"shift swap"}`, monday, doctor.ID)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateOverride(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var got Override
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Date != monday || got.AssignedDoctorID != doctor.ID {
		t.Errorf("unexpected override: %+v", got)
	}
}

func TestHandler_CreateOverride_Conflict(t *testing.T) {
	doctor := testDoctor("Dr. Adams", practitioner.PatternMWF)
	h, e := newHandlerFixture(doctor)
	if _, err := h.svc.CreateOverride(context.Background(), &Override{
		Date:             monday,
		AssignedDoctorID: doctor.ID,
		Reason:           "first",
	}); err != nil {
		t.Fatalf("seed override: %v", err)
	}

	body := fmt.Sprintf(`{"date":%q,"assigned_doctor_id":%q,"reason":"second"}`, monday, doctor.ID)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateOverride(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_UpdateOverride_NotFound(t *testing.T) {
	doctor := testDoctor("Dr. Adams", practitioner.PatternMWF)
	h, e := newHandlerFixture(doctor)

	body := fmt.Sprintf(`{"assigned_doctor_id":%q,"reason":"changed"}`, doctor.ID)
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues(monday)

	err := h.UpdateOverride(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Availability_MissingRange(t *testing.T) {
	h, e := newHandlerFixture()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Availability(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Availability(t *testing.T) {
	doctor := testDoctor("Dr. Adams", practitioner.PatternMWF)
	h, e := newHandlerFixture(doctor)

	req := httptest.NewRequest(http.MethodGet, "/?start="+monday+"&end="+monday, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Availability(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var slots []AvailabilitySlot
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(slots) != 9 {
		t.Errorf("got %d slots, want 9", len(slots))
	}
}

func TestHandler_OnDuty_EmptyRoster(t *testing.T) {
	h, e := newHandlerFixture()
	req := httptest.NewRequest(http.MethodGet, "/?date="+monday, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.OnDuty(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %s", rec.Body.String())
	}
}
