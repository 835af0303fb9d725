package schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/domain/practitioner"
	"github.com/clinicore/clinicore/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse", "registrar"))
	readGroup.GET("/schedule/availability", h.Availability)
	readGroup.GET("/schedule/blocks", h.Blocks)
	readGroup.GET("/schedule/on-duty", h.OnDuty)
	readGroup.GET("/schedule/overrides", h.ListOverrides)
	readGroup.GET("/schedule/overrides/:date", h.GetOverride)

	writeGroup := api.Group("", auth.RequireRole("admin", "registrar"))
	writeGroup.POST("/schedule/overrides", h.CreateOverride)
	writeGroup.PUT("/schedule/overrides/:date", h.UpdateOverride)
	writeGroup.DELETE("/schedule/overrides/:date", h.DeleteOverride)
}

type overrideRequest struct {
	Date             string    `json:"date"`
	AssignedDoctorID uuid.UUID `json:"assigned_doctor_id"`
	Reason           string    `json:"reason"`
}

func (h *Handler) CreateOverride(c echo.Context) error {
	var req overrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o := &Override{
		Date:             req.Date,
		AssignedDoctorID: req.AssignedDoctorID,
		Reason:           req.Reason,
	}
	created, err := h.svc.CreateOverride(c.Request().Context(), o)
	if err != nil {
		if errors.Is(err, ErrDuplicateOverride) {
			return echo.NewHTTPError(http.StatusConflict, "an override already exists for this date")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateOverride(c echo.Context) error {
	var req overrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o := &Override{
		Date:             c.Param("date"),
		AssignedDoctorID: req.AssignedDoctorID,
		Reason:           req.Reason,
	}
	updated, err := h.svc.UpdateOverride(c.Request().Context(), o)
	if err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "override not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteOverride(c echo.Context) error {
	if err := h.svc.DeleteOverride(c.Request().Context(), c.Param("date")); err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "override not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetOverride(c echo.Context) error {
	o, err := h.svc.GetOverride(c.Request().Context(), c.Param("date"))
	if err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "override not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListOverrides(c echo.Context) error {
	if doctorParam := c.QueryParam("doctor_id"); doctorParam != "" {
		doctorID, err := uuid.Parse(doctorParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		items, err := h.svc.ListOverridesByDoctor(c.Request().Context(), doctorID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, items)
	}

	start, end, err := rangeParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.svc.ListOverrides(c.Request().Context(), start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Availability(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	slots, err := h.svc.AvailabilitySlots(c.Request().Context(), start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) Blocks(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	blocks, err := h.svc.ScheduleBlocks(c.Request().Context(), start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, blocks)
}

func (h *Handler) OnDuty(c echo.Context) error {
	date := c.QueryParam("date")
	doctors, err := h.svc.ResolveOnDutyDoctors(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if doctors == nil {
		doctors = []*practitioner.Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func rangeParams(c echo.Context) (string, string, error) {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return "", "", errors.New("start and end query parameters are required")
	}
	return start, end, nil
}
