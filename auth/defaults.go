package auth

// DefaultPermissionTable is the immutable mapping of (role, object type) to
// the permissions globally granted to that role across every object of the
// type. It is built once at startup and passed by reference into the
// permission service; lookups never touch the store, which keeps the
// overwhelmingly common check (can an authenticated user create an
// observation) off the database entirely.
type DefaultPermissionTable struct {
	grants map[SystemRole]map[ObjectType][]Permission
}

// NewDefaultPermissionTable constructs the process-wide default grants:
//   - AUTHENTICATED users may create observations and images.
//   - MODERATOR may read, update, disable, publish, and delete anything.
//   - ADMIN holds everything MODERATOR holds, plus create.
//
// PUBLIC holds no defaults; anonymous read arrives through per-object
// grants created when an observation is published.
func NewDefaultPermissionTable() *DefaultPermissionTable {
	moderated := []Permission{PermissionRead, PermissionUpdate, PermissionDisable, PermissionPublish, PermissionDelete}
	all := append([]Permission{PermissionCreate}, moderated...)
	return &DefaultPermissionTable{
		grants: map[SystemRole]map[ObjectType][]Permission{
			RoleAuthenticated: {
				ObjectTypeObservation: {PermissionCreate},
				ObjectTypeImage:       {PermissionCreate},
			},
			RoleModerator: {
				ObjectTypeObservation: moderated,
				ObjectTypeImage:       moderated,
			},
			RoleAdmin: {
				ObjectTypeObservation: all,
				ObjectTypeImage:       all,
			},
		},
	}
}

// Permits reports whether role holds permission on every object of
// objectType by default.
func (t *DefaultPermissionTable) Permits(role SystemRole, objectType ObjectType, permission Permission) bool {
	for _, p := range t.grants[role][objectType] {
		if p == permission {
			return true
		}
	}
	return false
}

// Permissions returns the default permissions for (role, objectType). The
// returned slice must not be modified.
func (t *DefaultPermissionTable) Permissions(role SystemRole, objectType ObjectType) []Permission {
	return t.grants[role][objectType]
}
