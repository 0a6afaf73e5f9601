package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	reschedule *ucAppointment.RescheduleAppointment
	confirm    *ucAppointment.ConfirmAppointment
	cancel     *ucAppointment.CancelAppointment
	complete   *ucAppointment.CompleteAppointment
	listByDate *ucAppointment.ListAppointmentsByDate
	clock      timezone.Clock
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	clock timezone.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		reschedule: reschedule,
		confirm:    confirm,
		cancel:     cancel,
		complete:   complete,
		listByDate: listByDate,
		clock:      clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID uint   `json:"customer_id"`
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes" binding:"max=255"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(h.clock, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	tc := middleware.TenantContext(c)

	// cliente logado agenda para si mesmo
	customerID := req.CustomerID
	if customerID == 0 && tc.CurrentRole() == tenant.RoleCustomer {
		customerID = tc.CurrentUserID()
	}

	ap, err := h.create.Execute(c.Request.Context(), tc, ucAppointment.CreateAppointmentInput{
		CustomerID: customerID,
		BarberID:   req.BarberID,
		ServiceIDs: req.ServiceIDs,
		Start:      start,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// LIST
// ======================================================

// GET /api/appointments?barber_id=&date=
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := parseUintParam(c.Query("barber_id"))
	if !ok {
		httperr.BadRequest(c, "missing_barber", "Barbeiro obrigatório.")
		return
	}

	date, err := dateOrToday(h.clock, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), middleware.TenantContext(c), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(h.clock, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.TenantContext(c), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: id,
		Start:         start,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// CONFIRM / CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute)
}

type transitionFunc func(ctx context.Context, tc tenant.Context, id uuid.UUID) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, run transitionFunc) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), middleware.TenantContext(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// Um id malformado é tratado como inexistente.
func appointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return uuid.Nil, false
	}
	return id, true
}
