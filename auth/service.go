package auth

import (
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// PermissionService is the decision engine. It combines the immutable
// default permission table with persisted per-object grants from the store.
// The service is stateless and safe for concurrent use; every instance-level
// check is a synchronous call through to the store, with no caching between
// requests.
//
// Store errors are never swallowed here. Callers that want a fail-closed
// answer compose this service behind ObservationAccess.
type PermissionService struct {
	defaults *DefaultPermissionTable
	store    PermissionStore
	logger   *zap.Logger
}

// PermissionServiceOpt sets an option on a PermissionService.
type PermissionServiceOpt func(*PermissionService)

// WithPermissionLogger sets a custom logger on a PermissionService.
func WithPermissionLogger(logger *zap.Logger) PermissionServiceOpt {
	return func(s *PermissionService) {
		s.logger = logger
	}
}

// NewPermissionService constructs a PermissionService around the given
// default table and grant store.
func NewPermissionService(defaults *DefaultPermissionTable, store PermissionStore, opts ...PermissionServiceOpt) *PermissionService {
	s := PermissionService{defaults: defaults, store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// HasPermission decides whether the principal may exercise permission on the
// object. An empty objectID restricts the decision to role defaults, which
// is how CREATE is checked before an object exists.
//
// The default table is consulted first as a fast path; only when no role
// default matches does the decision assemble instance grants from the store.
func (s *PermissionService) HasPermission(objectType ObjectType, objectID string, permission Permission, p Principal) (bool, error) {
	if objectType == "" {
		return false, ErrObjectTypeRequired
	}
	roles := RolesForPrincipal(p)
	for _, role := range roles {
		if s.defaults.Permits(role, objectType, permission) {
			return true, nil
		}
	}
	grants, err := s.GetPermissions(objectType, objectID, p)
	if err != nil {
		return false, err
	}
	return grantHoldsPermission(grants, permission), nil
}

// GetPermissions assembles the full candidate grant set for a principal on
// an object: wildcard grants materialized from the default table for every
// held role, persisted ROLE grants on the object for every held role, and,
// for an authenticated principal, persisted USER grants on the object.
func (s *PermissionService) GetPermissions(objectType ObjectType, objectID string, p Principal) ([]models.PermissionGrant, error) {
	if objectType == "" {
		return nil, ErrObjectTypeRequired
	}
	var grants []models.PermissionGrant
	roles := RolesForPrincipal(p)
	for _, role := range roles {
		for _, permission := range s.defaults.Permissions(role, objectType) {
			grants = append(grants, defaultGrant(role, objectType, permission))
		}
	}
	if objectID == "" {
		return grants, nil
	}
	for _, role := range roles {
		roleGrants, err := s.store.FindGrants(objectType, objectID, GranteeTypeRole, string(role))
		if err != nil {
			return nil, err
		}
		grants = append(grants, roleGrants...)
	}
	if p.Authenticated && p.Identifier != "" {
		userGrants, err := s.store.FindGrants(objectType, objectID, GranteeTypeUser, p.Identifier)
		if err != nil {
			return nil, err
		}
		grants = append(grants, userGrants...)
	}
	return grants, nil
}

// GrantPermissions computes deterministic ids for the requested grants and
// persists them. Granting the same five-field tuple twice upserts a single
// record.
func (s *PermissionService) GrantPermissions(requests []GrantRequest) ([]models.PermissionGrant, error) {
	grants := make([]models.PermissionGrant, 0, len(requests))
	for _, r := range requests {
		if r.ObjectType == "" {
			return nil, ErrObjectTypeRequired
		}
		if r.ObjectID == "" || r.ObjectID == WildcardObjectID {
			return nil, ErrObjectIDRequired
		}
		if r.Grantee == "" {
			return nil, ErrGranteeRequired
		}
		grants = append(grants, NewGrant(r.ObjectType, r.ObjectID, r.GranteeType, r.Grantee, r.Permission))
	}
	saved, err := s.store.SaveGrants(grants)
	if err != nil {
		return nil, err
	}
	for _, g := range saved {
		s.logger.Info("permission granted",
			zap.String("objectType", g.ObjectType),
			zap.String("objectId", g.ObjectID),
			zap.String("granteeType", g.GranteeType),
			zap.String("grantee", g.Grantee),
			zap.String("permission", g.Permission),
		)
	}
	return saved, nil
}

// GrantOwnership establishes the creating user as sole owner of a freshly
// created object, granting read, update, disable, and delete. Called exactly
// once per object, at creation time.
func (s *PermissionService) GrantOwnership(objectType ObjectType, objectID string, ownerUserID string) ([]models.PermissionGrant, error) {
	owned := []Permission{PermissionRead, PermissionUpdate, PermissionDisable, PermissionDelete}
	requests := make([]GrantRequest, 0, len(owned))
	for _, permission := range owned {
		requests = append(requests, GrantRequest{
			ObjectType:  objectType,
			ObjectID:    objectID,
			GranteeType: GranteeTypeUser,
			Grantee:     ownerUserID,
			Permission:  permission,
		})
	}
	return s.GrantPermissions(requests)
}

// GrantPublicRead grants READ on the object to the PUBLIC role. This is how
// publishing exposes an object to anonymous callers.
func (s *PermissionService) GrantPublicRead(objectType ObjectType, objectID string) ([]models.PermissionGrant, error) {
	return s.GrantPermissions([]GrantRequest{{
		ObjectType:  objectType,
		ObjectID:    objectID,
		GranteeType: GranteeTypeRole,
		Grantee:     string(RolePublic),
		Permission:  PermissionRead,
	}})
}

// RevokePublicRead removes the PUBLIC read grant from the object, returning
// it to draft visibility.
func (s *PermissionService) RevokePublicRead(objectType ObjectType, objectID string) error {
	deleted, err := s.store.DeleteGrant(objectType, objectID, GranteeTypeRole, string(RolePublic), PermissionRead)
	if err != nil {
		return err
	}
	for _, g := range deleted {
		s.logger.Info("permission revoked",
			zap.String("objectType", g.ObjectType),
			zap.String("objectId", g.ObjectID),
			zap.String("grantee", g.Grantee),
			zap.String("permission", g.Permission),
		)
	}
	return nil
}

// RevokeObjectPermissions deletes every grant referencing the object. Used
// when the object itself is deleted.
func (s *PermissionService) RevokeObjectPermissions(objectType ObjectType, objectID string) error {
	deleted, err := s.store.DeleteGrantsByObject(objectType, objectID)
	if err != nil {
		return err
	}
	s.logger.Info("object permissions revoked",
		zap.String("objectType", string(objectType)),
		zap.String("objectId", objectID),
		zap.Int("count", len(deleted)),
	)
	return nil
}
