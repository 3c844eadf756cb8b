package protocol

// Access levels reported in AccessInfo, from weakest to strongest.
const (
	AccessLevelDenied    = "DENIED"
	AccessLevelPublic    = "PUBLIC"
	AccessLevelOwner     = "OWNER"
	AccessLevelModerator = "MODERATOR"
)

// AccessInfo summarizes what the caller may do with a single observation.
// It is advisory only; every mutating route re-checks permissions itself.
type AccessInfo struct {
	// AccessLevel is the strongest level the caller holds for the
	// observation. One of DENIED, PUBLIC, OWNER, or MODERATOR.
	AccessLevel string `json:"accessLevel"`
	// CanEdit indicates the caller may update the observation.
	CanEdit bool `json:"canEdit"`
	// CanPublish indicates the caller may publish or unpublish it.
	CanPublish bool `json:"canPublish"`
	// CanDelete indicates the caller may delete it.
	CanDelete bool `json:"canDelete"`
}
