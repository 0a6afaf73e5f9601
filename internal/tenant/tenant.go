package tenant

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

type Role string

const (
	RoleOwner    Role = "owner"
	RoleBarber   Role = "barber"
	RoleCustomer Role = "customer"
)

// ParseRole accepts only known roles.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleOwner, RoleBarber, RoleCustomer:
		return Role(raw), true
	}
	return "", false
}

func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleBarber
}

// Context is how the surrounding layer tells the core who is calling.
type Context interface {
	CurrentShopID() (uint, bool)
	CurrentUserID() uint
	CurrentRole() Role
}

// Caller is a resolved, shop-scoped identity.
type Caller struct {
	ShopID uint
	UserID uint
	Role   Role
}

func (c Caller) IsStaff() bool {
	return c.Role.IsStaff()
}

// Resolve fails with Unauthorized when there is no shop in scope.
func Resolve(tc Context) (Caller, error) {
	if tc == nil {
		return Caller{}, httperr.ErrUnauthorized("missing_tenant")
	}
	shopID, ok := tc.CurrentShopID()
	if !ok || shopID == 0 {
		return Caller{}, httperr.ErrUnauthorized("missing_tenant")
	}
	return Caller{
		ShopID: shopID,
		UserID: tc.CurrentUserID(),
		Role:   tc.CurrentRole(),
	}, nil
}

// Static is a fixed Context, handy for jobs and tests.
type Static struct {
	ShopID uint
	UserID uint
	Role   Role
}

func (s Static) CurrentShopID() (uint, bool) { return s.ShopID, s.ShopID != 0 }
func (s Static) CurrentUserID() uint         { return s.UserID }
func (s Static) CurrentRole() Role           { return s.Role }
