package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// GrantRequest names the five identifying fields of a grant to be created.
type GrantRequest struct {
	ObjectType  ObjectType
	ObjectID    string
	GranteeType GranteeType
	Grantee     string
	Permission  Permission
}

// GrantID computes the deterministic identifier for a grant: a hex encoded
// SHA-256 over a stable serialization of the five identifying fields. Equal
// field tuples always hash to the same id, which is what makes re-granting
// idempotent: the store upserts on id and converges to one record.
func GrantID(objectType ObjectType, objectID string, granteeType GranteeType, grantee string, permission Permission) string {
	h := sha256.New()
	h.Write([]byte(strings.Join([]string{
		string(objectType), objectID, string(granteeType), grantee, string(permission),
	}, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))
}

// NewGrant materializes a grant record with its computed id.
func NewGrant(objectType ObjectType, objectID string, granteeType GranteeType, grantee string, permission Permission) models.PermissionGrant {
	return models.PermissionGrant{
		ID:          GrantID(objectType, objectID, granteeType, grantee, permission),
		ObjectType:  string(objectType),
		ObjectID:    objectID,
		GranteeType: string(granteeType),
		Grantee:     grantee,
		Permission:  string(permission),
	}
}

// defaultGrant materializes an in-memory wildcard grant from the default
// permission table. These never reach the store.
func defaultGrant(role SystemRole, objectType ObjectType, permission Permission) models.PermissionGrant {
	return NewGrant(objectType, WildcardObjectID, GranteeTypeRole, string(role), permission)
}

// grantHoldsPermission reports whether any grant in the set carries the
// requested permission.
func grantHoldsPermission(grants []models.PermissionGrant, permission Permission) bool {
	for _, g := range grants {
		if g.Permission == string(permission) {
			return true
		}
	}
	return false
}
