package auth

import (
	"go.uber.org/zap"
)

// AccessLevel is the coarse classification of a caller's relationship to an
// object, used to shape UI-facing responses.
type AccessLevel string

// Access levels, strongest first.
const (
	AccessLevelModerator AccessLevel = "MODERATOR"
	AccessLevelOwner     AccessLevel = "OWNER"
	AccessLevelPublic    AccessLevel = "PUBLIC"
	AccessLevelDenied    AccessLevel = "DENIED"
)

// AccessInfo summarizes what a caller may do with an object. It is computed
// fresh on every request and never stored.
type AccessInfo struct {
	AccessLevel AccessLevel
	CanEdit     bool
	CanPublish  bool
	CanDelete   bool
}

// ObservationAccess answers business-level access questions about
// observations by composing the permission service with domain facts.
//
// Every method on this type is fail-closed: an error while resolving
// ownership or publication state (row missing, store down, malformed data)
// is converted into a denial rather than surfaced. Unknown state is treated
// as untrusted state. The permission service underneath remains fail-loud;
// the collapse happens only at this boundary.
type ObservationAccess struct {
	permissions  *PermissionService
	observations ObservationAccessor
	logger       *zap.Logger
}

// ObservationAccessOpt sets an option on an ObservationAccess.
type ObservationAccessOpt func(*ObservationAccess)

// WithAccessLogger sets a custom logger on an ObservationAccess.
func WithAccessLogger(logger *zap.Logger) ObservationAccessOpt {
	return func(a *ObservationAccess) {
		a.logger = logger
	}
}

// NewObservationAccess constructs an ObservationAccess.
func NewObservationAccess(permissions *PermissionService, observations ObservationAccessor, opts ...ObservationAccessOpt) *ObservationAccess {
	a := ObservationAccess{permissions: permissions, observations: observations, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&a)
	}
	return &a
}

// IsOwner reports whether the observation is owned by the named user.
func (a *ObservationAccess) IsOwner(id string, userID string) bool {
	if userID == "" {
		return false
	}
	facts, err := a.observations.ObservationFacts(id)
	if err != nil {
		a.denied(id, "ownership lookup failed", err)
		return false
	}
	return facts.OwnedBy == userID
}

// IsPublished reports whether the observation has been published.
func (a *ObservationAccess) IsPublished(id string) bool {
	facts, err := a.observations.ObservationFacts(id)
	if err != nil {
		a.denied(id, "publication lookup failed", err)
		return false
	}
	return facts.Published
}

// CanEdit reports whether the principal may modify the observation: its
// owner, or anyone with moderation authority.
func (a *ObservationAccess) CanEdit(id string, p Principal) bool {
	if HasModeratorRole(p) {
		return true
	}
	return p.Authenticated && a.IsOwner(id, p.Identifier)
}

// CanPublish reports whether the principal may publish or unpublish the
// observation. Only moderators qualify; owners cannot self-publish.
func (a *ObservationAccess) CanPublish(id string, p Principal) bool {
	return HasModeratorRole(p)
}

// CanDelete reports whether the principal may delete the observation. Same
// rule as CanEdit.
func (a *ObservationAccess) CanDelete(id string, p Principal) bool {
	return a.CanEdit(id, p)
}

// GetAccessInfo classifies the principal's relationship to the observation,
// with precedence MODERATOR > OWNER > PUBLIC (when published) > DENIED. An
// anonymous caller can only ever reach PUBLIC or DENIED.
func (a *ObservationAccess) GetAccessInfo(id string, p Principal) AccessInfo {
	if HasModeratorRole(p) {
		return AccessInfo{AccessLevel: AccessLevelModerator, CanEdit: true, CanPublish: true, CanDelete: true}
	}
	if p.Authenticated && a.IsOwner(id, p.Identifier) {
		return AccessInfo{AccessLevel: AccessLevelOwner, CanEdit: true, CanPublish: false, CanDelete: true}
	}
	if a.IsPublished(id) {
		return AccessInfo{AccessLevel: AccessLevelPublic}
	}
	return AccessInfo{AccessLevel: AccessLevelDenied}
}

// CanAccessDraftResource reports whether the principal may see a draft
// resource such as an unpublished image: moderators always may, and so may
// the owner of any observation that references the resource.
func (a *ObservationAccess) CanAccessDraftResource(resourceID string, p Principal) bool {
	if HasModeratorRole(p) {
		return true
	}
	if !p.Authenticated || p.Identifier == "" {
		return false
	}
	owned, err := a.observations.ObservationFactsByOwner(p.Identifier)
	if err != nil {
		a.denied(resourceID, "owner listing failed", err)
		return false
	}
	for _, facts := range owned {
		for _, imageID := range facts.ImageIDs {
			if imageID == resourceID {
				return true
			}
		}
	}
	return false
}

// denied logs the underlying cause of a fail-closed denial. The caller of
// the predicate never learns why, only that access was denied.
func (a *ObservationAccess) denied(id string, msg string, err error) {
	a.logger.Info("access denied",
		zap.String("id", id),
		zap.String("reason", msg),
		zap.Error(err),
	)
}
