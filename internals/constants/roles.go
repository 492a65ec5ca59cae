package constants

import "fmt"

// User roles (mirrors the profile roles of the old Django backend)
const (
	RoleTenant          = "tenant"
	RolePropertyOwner   = "property_owner"
	RoleHouseSupervisor = "house_supervisor"
)

// Role error message templates
const (
	ErrOnlyOwnersCanAccess      = "❌ Only property owners may access %s."
	ErrOnlySupervisorsCanAccess = "❌ Only property owners or house supervisors may access %s."
	ErrOnlyTenantsCanAccess     = "❌ Only tenants may access %s."
)

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

func RoleErrorSupervisor(feature string) string {
	return fmt.Sprintf(ErrOnlySupervisorsCanAccess, feature)
}

func RoleErrorTenant(feature string) string {
	return fmt.Sprintf(ErrOnlyTenantsCanAccess, feature)
}
