package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	getAvailability *ucAppointment.GetAvailability
	clock           timezone.Clock
}

func NewAvailabilityHandler(
	getAvailability *ucAppointment.GetAvailability,
	clock timezone.Clock,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getAvailability: getAvailability,
		clock:           clock,
	}
}

// GET /api/barbers/:barberID/availability?from=YYYY-MM-DD&to=YYYY-MM-DD&duration=N
func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID, ok := parseUintParam(c.Param("barberID"))
	if !ok {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	from, err := dateOrToday(h.clock, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	to := from
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate(h.clock, raw); err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		if duration, err = strconv.Atoi(raw); err != nil {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
	}

	result, err := h.getAvailability.Execute(
		c.Request.Context(),
		middleware.TenantContext(c),
		domain.AvailabilityInput{
			BarberID:               barberID,
			DateFrom:               from,
			DateTo:                 to,
			ServiceDurationMinutes: duration,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, result)
}
