package auth

// ResolveRoles derives the set of system roles a request holds from its
// authentication flag and scope strings. Every request holds PUBLIC. Role
// membership is monotonic in authentication strength: an authenticated
// caller's role set is always a superset of what the same scopes would
// yield anonymously.
func ResolveRoles(authenticated bool, scopes []string) []SystemRole {
	roles := []SystemRole{RolePublic}
	if !authenticated {
		return roles
	}
	roles = append(roles, RoleAuthenticated)
	for _, scope := range scopes {
		switch NormalizeScope(scope) {
		case string(RoleModerator):
			if !HasRole(roles, RoleModerator) {
				roles = append(roles, RoleModerator)
			}
		case string(RoleAdmin):
			if !HasRole(roles, RoleAdmin) {
				roles = append(roles, RoleAdmin)
			}
		}
	}
	return roles
}

// RolesForPrincipal resolves roles directly from a principal.
func RolesForPrincipal(p Principal) []SystemRole {
	return ResolveRoles(p.Authenticated, p.Scopes)
}

// HasRole reports whether role is present in roles.
func HasRole(roles []SystemRole, role SystemRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasModeratorRole reports whether the principal holds a role that conveys
// moderation authority. Admins moderate by definition.
func HasModeratorRole(p Principal) bool {
	roles := RolesForPrincipal(p)
	return HasRole(roles, RoleModerator) || HasRole(roles, RoleAdmin)
}
