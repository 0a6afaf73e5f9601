package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var messages = map[string]string{
	"appointment_not_found":  "Agendamento não encontrado.",
	"barber_not_found":       "Barbeiro não encontrado.",
	"customer_not_found":     "Cliente não encontrado.",
	"service_not_found":      "Serviço não encontrado.",
	"barbershop_not_found":   "Barbearia não encontrada.",
	"slot_unavailable":       "Horário indisponível.",
	"invalid_state":          "Agendamento não pode mudar para este estado.",
	"outside_working_hours":  "Fora do horário de atendimento.",
	"start_in_past":          "Horário inválido.",
	"too_soon":               "Horário inválido.",
	"appointment_not_ended":  "Agendamento ainda não terminou.",
	"service_not_offered":    "Serviço não oferecido por este barbeiro.",
	"no_services":            "Selecione ao menos um serviço.",
	"invalid_duration":       "Duração inválida.",
	"invalid_date_range":     "Período inválido.",
	"date_range_too_long":    "Período muito longo.",
	"missing_tenant":         "Barbearia não identificada.",
	"role_not_allowed":       "Permissão negada.",
	"invalid_slot_length":    "Duração de horário inválida.",
	"invalid_business_hours": "Horário de funcionamento inválido.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError traduz um erro do core para a resposta HTTP. Violações de
// tenant ocultas saem como 404, iguais a "não encontrado".
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		zap.L().Error("unexpected error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	Write(c, StatusOf(be), be.Code, messageFor(be.Code))
}

func StatusOf(be BusinessError) int {
	if be.concealed {
		return http.StatusNotFound
	}
	switch be.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func messageFor(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "Requisição inválida."
}
