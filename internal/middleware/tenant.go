package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

// ginTenant lê a identidade que o AuthMiddleware deixou no contexto.
type ginTenant struct {
	c *gin.Context
}

func TenantContext(c *gin.Context) tenant.Context {
	return ginTenant{c: c}
}

func (t ginTenant) CurrentShopID() (uint, bool) {
	v, ok := t.c.Get(ContextBarbershopID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func (t ginTenant) CurrentUserID() uint {
	return t.c.GetUint(ContextUserID)
}

func (t ginTenant) CurrentRole() tenant.Role {
	v, _ := t.c.Get(ContextUserRole)
	role, _ := v.(tenant.Role)
	return role
}
