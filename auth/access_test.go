package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// memoryAccessor is an in-memory ObservationAccessor for tests.
type memoryAccessor struct {
	observations map[string]ObservationFacts
	err          error
}

func (m *memoryAccessor) ObservationFacts(id string) (ObservationFacts, error) {
	if m.err != nil {
		return ObservationFacts{}, m.err
	}
	facts, ok := m.observations[id]
	if !ok {
		return ObservationFacts{}, errors.New("observation not found")
	}
	return facts, nil
}

func (m *memoryAccessor) ObservationFactsByOwner(ownerID string) ([]ObservationFacts, error) {
	if m.err != nil {
		return nil, m.err
	}
	var owned []ObservationFacts
	for _, facts := range m.observations {
		if facts.OwnedBy == ownerID {
			owned = append(owned, facts)
		}
	}
	return owned, nil
}

func newTestAccess(accessor ObservationAccessor) *ObservationAccess {
	return NewObservationAccess(newTestService(newMemoryStore()), accessor)
}

var (
	alice     = Principal{Authenticated: true, Identifier: "alice"}
	bob       = Principal{Authenticated: true, Identifier: "bob"}
	moderator = Principal{Authenticated: true, Identifier: "mod", Scopes: []string{"MODERATOR"}}
)

func draftFixture() *memoryAccessor {
	return &memoryAccessor{observations: map[string]ObservationFacts{
		"obs1": {ID: "obs1", OwnedBy: "alice", Published: false, ImageIDs: []string{"img1"}},
		"obs2": {ID: "obs2", OwnedBy: "bob", Published: true, ImageIDs: []string{"img2"}},
	}}
}

func TestGetAccessInfoDeniedForAnonymousOnDraft(t *testing.T) {
	access := newTestAccess(draftFixture())
	info := access.GetAccessInfo("obs1", Anonymous)
	assert.Equal(t, AccessLevelDenied, info.AccessLevel)
	assert.False(t, info.CanEdit)
	assert.False(t, info.CanPublish)
	assert.False(t, info.CanDelete)
}

func TestGetAccessInfoPublicForAnonymousOnPublished(t *testing.T) {
	access := newTestAccess(draftFixture())
	info := access.GetAccessInfo("obs2", Anonymous)
	assert.Equal(t, AccessLevelPublic, info.AccessLevel)
	assert.False(t, info.CanEdit)
}

func TestGetAccessInfoOwner(t *testing.T) {
	access := newTestAccess(draftFixture())
	info := access.GetAccessInfo("obs1", alice)
	assert.Equal(t, AccessLevelOwner, info.AccessLevel)
	assert.True(t, info.CanEdit)
	assert.False(t, info.CanPublish, "owners cannot self-publish")
	assert.True(t, info.CanDelete)
}

func TestGetAccessInfoModeratorOutranksEverything(t *testing.T) {
	access := newTestAccess(draftFixture())
	for _, id := range []string{"obs1", "obs2", "missing"} {
		info := access.GetAccessInfo(id, moderator)
		assert.Equal(t, AccessLevelModerator, info.AccessLevel)
		assert.True(t, info.CanEdit)
		assert.True(t, info.CanPublish)
		assert.True(t, info.CanDelete)
	}
}

func TestGetAccessInfoNonOwnerOnDraft(t *testing.T) {
	access := newTestAccess(draftFixture())
	info := access.GetAccessInfo("obs1", bob)
	assert.Equal(t, AccessLevelDenied, info.AccessLevel)
}

func TestCanEditCanDelete(t *testing.T) {
	access := newTestAccess(draftFixture())
	assert.True(t, access.CanEdit("obs1", alice))
	assert.False(t, access.CanEdit("obs1", bob))
	assert.True(t, access.CanEdit("obs1", moderator))
	assert.True(t, access.CanDelete("obs1", alice))
	assert.False(t, access.CanDelete("obs1", bob))
}

func TestCanPublishModeratorOnly(t *testing.T) {
	access := newTestAccess(draftFixture())
	assert.False(t, access.CanPublish("obs1", alice), "owner must not publish own draft")
	assert.True(t, access.CanPublish("obs1", moderator))
	assert.False(t, access.CanPublish("obs1", Anonymous))
}

func TestCanAccessDraftResource(t *testing.T) {
	access := newTestAccess(draftFixture())
	assert.True(t, access.CanAccessDraftResource("img1", alice), "owner of referencing observation sees draft image")
	assert.False(t, access.CanAccessDraftResource("img1", bob), "stranger must not see draft image even though it exists")
	assert.True(t, access.CanAccessDraftResource("img1", moderator))
	assert.False(t, access.CanAccessDraftResource("img1", Anonymous))
	assert.False(t, access.CanAccessDraftResource("unreferenced", alice))
}

func TestAccessFailsClosed(t *testing.T) {
	// Errors resolving domain state must become denials, never surface.
	accessor := &memoryAccessor{err: errors.New("store unavailable")}
	access := newTestAccess(accessor)

	assert.False(t, access.IsOwner("obs1", "alice"))
	assert.False(t, access.IsPublished("obs1"))
	assert.False(t, access.CanEdit("obs1", alice))
	assert.False(t, access.CanAccessDraftResource("img1", alice))

	info := access.GetAccessInfo("obs1", alice)
	assert.Equal(t, AccessLevelDenied, info.AccessLevel)

	// Moderation authority does not require domain state, so it survives a
	// broken store.
	assert.True(t, access.CanEdit("obs1", moderator))
}

func TestAccessUnknownObjectDenied(t *testing.T) {
	access := newTestAccess(draftFixture())
	info := access.GetAccessInfo("missing", alice)
	assert.Equal(t, AccessLevelDenied, info.AccessLevel)
}
