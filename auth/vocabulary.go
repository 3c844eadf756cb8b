package auth

import "strings"

// Permission is an action that can be granted on an object.
type Permission string

// Permissions that may appear in grants.
const (
	PermissionRead    Permission = "READ"
	PermissionUpdate  Permission = "UPDATE"
	PermissionCreate  Permission = "CREATE"
	PermissionDisable Permission = "DISABLE"
	PermissionPublish Permission = "PUBLISH"
	PermissionDelete  Permission = "DELETE"
)

// ObjectType is a kind of object in the catalog. The permission model is
// generic over object type so a new kind can be added without touching the
// decision algorithm.
type ObjectType string

// Object types known to the catalog.
const (
	ObjectTypeObservation ObjectType = "OBSERVATION"
	ObjectTypeImage       ObjectType = "IMAGE"
)

// GranteeType distinguishes grants held by a role from grants held by a
// specific user.
type GranteeType string

// Grantee types.
const (
	GranteeTypeRole GranteeType = "ROLE"
	GranteeTypeUser GranteeType = "USER"
)

// SystemRole is a role a request can hold, derived from the caller's
// authentication state and scopes.
type SystemRole string

// System roles. Moderator is granted via scope; public and authenticated are
// derived from the request itself.
const (
	RolePublic        SystemRole = "PUBLIC"
	RoleAuthenticated SystemRole = "AUTHENTICATED"
	RoleModerator     SystemRole = "MODERATOR"
	RoleAdmin         SystemRole = "ADMIN"
)

// WildcardObjectID marks a grant that applies to every object of a type.
// Wildcard grants only exist in memory as role defaults and never reach the
// store.
const WildcardObjectID = "*"

// NormalizeScope strips any framework role prefix and upcases a raw scope
// string so it can be compared against role names. Tokens arriving from
// different identity providers disagree on whether "ROLE_" is part of the
// authority name.
func NormalizeScope(scope string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(scope), "ROLE_"))
}
