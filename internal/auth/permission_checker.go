package auth

type PermissionChecker interface {
	CanManageRecords(userPermissions []string) bool
	CanImportRecords(userPermissions []string) bool
	CanManageDepartments(userPermissions []string) bool
	CanWipeDatabase(userPermissions []string) bool
	CanViewAuditLogs(userPermissions []string) bool
	HasAnyPermission(userPermissions []string, requiredPermissions []string) bool
	IsAdmin(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) CanManageRecords(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionManageRecords, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanImportRecords(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionImportRecords, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanManageDepartments(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionManageDepartments, PermissionAdmin})
}

// CanWipeDatabase is deliberately not implied by manage_records: wiping the
// registry is its own grant.
func (c *DefaultPermissionChecker) CanWipeDatabase(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionWipeDatabase, PermissionAdmin})
}

func (c *DefaultPermissionChecker) CanViewAuditLogs(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionViewAuditLogs, PermissionAdmin})
}

func (c *DefaultPermissionChecker) HasAnyPermission(userPermissions []string, requiredPermissions []string) bool {
	for _, userPerm := range userPermissions {
		for _, requiredPerm := range requiredPermissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) IsAdmin(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermissionAdmin})
}
