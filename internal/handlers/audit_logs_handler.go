package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	clock timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

// GET /api/audit-logs?action=&entity=&entity_id=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	caller, err := tenant.Resolve(middleware.TenantContext(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !caller.IsStaff() {
		httperr.FromError(c, httperr.ErrForbidden("role_not_allowed"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Query base (sempre protegido por barbershop)
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", caller.ShopID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if entityID := c.Query("entity_id"); entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDate(h.clock, fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDate(h.clock, toStr); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Paged(c, logs, total, page, limit)
}
