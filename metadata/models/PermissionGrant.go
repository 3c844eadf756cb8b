package models

import "time"

// PermissionGrant is the unit of persisted authorization: a record that a
// grantee (a role or a specific user) may exercise one permission on one
// object. Role-default grants carry the wildcard object id "*" and exist only
// in memory; grants that reach the database always name a concrete object.
//
// The ID is a deterministic hash of the other five identifying fields, so
// granting the same permission twice upserts a single row rather than
// accumulating duplicates.
type PermissionGrant struct {
	// ID is a hex encoded hash derived from the identifying fields.
	ID string `db:"id"`
	// ObjectType is the kind of object the grant applies to, e.g.
	// OBSERVATION or IMAGE.
	ObjectType string `db:"objectType"`
	// ObjectID is the concrete object the grant applies to, or "*" for a
	// role-default grant covering every object of the type.
	ObjectID string `db:"objectId"`
	// GranteeType is ROLE or USER.
	GranteeType string `db:"granteeType"`
	// Grantee is the role name or user identifier being granted.
	Grantee string `db:"grantee"`
	// Permission is the action being granted, e.g. READ or PUBLISH.
	Permission string `db:"permission"`
	// CreatedDate is when the record was persisted. Zero for in-memory
	// default grants.
	CreatedDate time.Time `db:"createdDate"`
}
