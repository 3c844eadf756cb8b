package auth

import (
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// Error is our error type.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrObjectTypeRequired is returned when a check or grant omits the object type.
	ErrObjectTypeRequired = Error("auth: object type required")
	// ErrObjectIDRequired is returned when a grant operation omits the object id.
	ErrObjectIDRequired = Error("auth: object id required")
	// ErrGranteeRequired is returned when a grant operation omits the grantee.
	ErrGranteeRequired = Error("auth: grantee required")
)

// Principal is an already-verified caller identity. Token validation happens
// upstream; the engine only ever sees the identifier, the authentication
// flag, and the raw scope strings.
type Principal struct {
	// Identifier is the unique user identifier, empty for anonymous callers.
	Identifier string
	// Authenticated is true when the fronting gateway verified a credential.
	Authenticated bool
	// Scopes are the raw scope strings attached to the credential.
	Scopes []string
}

// Anonymous is the principal used for requests without a verified identity.
var Anonymous = Principal{}

// PermissionStore is the persistence contract for instance-level grants.
// Implementations must upsert on the grant ID so that re-granting an
// identical permission converges to a single record.
type PermissionStore interface {
	FindGrants(objectType ObjectType, objectID string, granteeType GranteeType, grantee string) ([]models.PermissionGrant, error)
	SaveGrants(grants []models.PermissionGrant) ([]models.PermissionGrant, error)
	DeleteGrantsByObject(objectType ObjectType, objectID string) ([]models.PermissionGrant, error)
	DeleteGrant(objectType ObjectType, objectID string, granteeType GranteeType, grantee string, permission Permission) ([]models.PermissionGrant, error)
}

// ObservationFacts are the three things the access service needs to know
// about an observation without caring how it is stored.
type ObservationFacts struct {
	// ID is the observation identifier.
	ID string
	// OwnedBy identifies the creating user.
	OwnedBy string
	// Published is the publication flag.
	Published bool
	// ImageIDs are the images referenced by the observation.
	ImageIDs []string
}

// ObservationAccessor resolves domain facts for the access service. The DAO
// implements this against the database.
type ObservationAccessor interface {
	ObservationFacts(id string) (ObservationFacts, error)
	ObservationFactsByOwner(ownerID string) ([]ObservationFacts, error)
}
