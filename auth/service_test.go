package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// memoryStore is an in-memory PermissionStore that upserts on grant id, the
// same contract the database implementation honors.
type memoryStore struct {
	grants map[string]models.PermissionGrant
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{grants: make(map[string]models.PermissionGrant)}
}

func (m *memoryStore) FindGrants(objectType ObjectType, objectID string, granteeType GranteeType, grantee string) ([]models.PermissionGrant, error) {
	if m.err != nil {
		return nil, m.err
	}
	var found []models.PermissionGrant
	for _, g := range m.grants {
		if g.ObjectType == string(objectType) && g.ObjectID == objectID &&
			g.GranteeType == string(granteeType) && g.Grantee == grantee {
			found = append(found, g)
		}
	}
	return found, nil
}

func (m *memoryStore) SaveGrants(grants []models.PermissionGrant) ([]models.PermissionGrant, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, g := range grants {
		m.grants[g.ID] = g
	}
	return grants, nil
}

func (m *memoryStore) DeleteGrantsByObject(objectType ObjectType, objectID string) ([]models.PermissionGrant, error) {
	if m.err != nil {
		return nil, m.err
	}
	var deleted []models.PermissionGrant
	for id, g := range m.grants {
		if g.ObjectType == string(objectType) && g.ObjectID == objectID {
			deleted = append(deleted, g)
			delete(m.grants, id)
		}
	}
	return deleted, nil
}

func (m *memoryStore) DeleteGrant(objectType ObjectType, objectID string, granteeType GranteeType, grantee string, permission Permission) ([]models.PermissionGrant, error) {
	if m.err != nil {
		return nil, m.err
	}
	id := GrantID(objectType, objectID, granteeType, grantee, permission)
	g, ok := m.grants[id]
	if !ok {
		return nil, nil
	}
	delete(m.grants, id)
	return []models.PermissionGrant{g}, nil
}

func newTestService(store PermissionStore) *PermissionService {
	return NewPermissionService(NewDefaultPermissionTable(), store)
}

func TestHasPermissionDefaultsWithoutObject(t *testing.T) {
	svc := newTestService(newMemoryStore())
	cases := []struct {
		name       string
		principal  Principal
		objectType ObjectType
		permission Permission
		expected   bool
	}{
		{"authenticated creates observation", Principal{Authenticated: true, Identifier: "alice"}, ObjectTypeObservation, PermissionCreate, true},
		{"authenticated creates image", Principal{Authenticated: true, Identifier: "alice"}, ObjectTypeImage, PermissionCreate, true},
		{"anonymous cannot create", Anonymous, ObjectTypeObservation, PermissionCreate, false},
		{"authenticated cannot publish", Principal{Authenticated: true, Identifier: "alice"}, ObjectTypeObservation, PermissionPublish, false},
		{"moderator publishes", Principal{Authenticated: true, Identifier: "mod", Scopes: []string{"MODERATOR"}}, ObjectTypeObservation, PermissionPublish, true},
		{"moderator creates via authenticated role", Principal{Authenticated: true, Identifier: "mod", Scopes: []string{"MODERATOR"}}, ObjectTypeObservation, PermissionCreate, true},
		{"admin creates", Principal{Authenticated: true, Identifier: "root", Scopes: []string{"ADMIN"}}, ObjectTypeImage, PermissionCreate, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, err := svc.HasPermission(c.objectType, "", c.permission, c.principal)
			require.NoError(t, err)
			assert.Equal(t, c.expected, ok)
		})
	}
}

func TestHasPermissionDefaultsCoverWholeTable(t *testing.T) {
	// Every (role, objectType, permission) entry in the default table must be
	// honored for a principal holding the role, with no object id.
	svc := newTestService(newMemoryStore())
	principals := map[SystemRole]Principal{
		RoleAuthenticated: {Authenticated: true, Identifier: "u"},
		RoleModerator:     {Authenticated: true, Identifier: "m", Scopes: []string{"MODERATOR"}},
		RoleAdmin:         {Authenticated: true, Identifier: "a", Scopes: []string{"ADMIN"}},
	}
	table := NewDefaultPermissionTable()
	for role, p := range principals {
		for _, objectType := range []ObjectType{ObjectTypeObservation, ObjectTypeImage} {
			for _, permission := range table.Permissions(role, objectType) {
				ok, err := svc.HasPermission(objectType, "", permission, p)
				require.NoError(t, err)
				if !ok {
					t.Errorf("role %s should hold %s on %s by default", role, permission, objectType)
				}
			}
		}
	}
}

func TestHasPermissionInstanceRoleGrant(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.GrantPermissions([]GrantRequest{{
		ObjectType:  ObjectTypeObservation,
		ObjectID:    "obs1",
		GranteeType: GranteeTypeRole,
		Grantee:     string(RoleAuthenticated),
		Permission:  PermissionUpdate,
	}})
	require.NoError(t, err)

	p := Principal{Authenticated: true, Identifier: "carol"}
	ok, err := svc.HasPermission(ObjectTypeObservation, "obs1", PermissionUpdate, p)
	require.NoError(t, err)
	assert.True(t, ok, "role grant on obs1 should apply")

	ok, err = svc.HasPermission(ObjectTypeObservation, "obs2", PermissionUpdate, p)
	require.NoError(t, err)
	assert.False(t, ok, "grant must not leak to other object ids")
}

func TestGrantOwnership(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.GrantOwnership(ObjectTypeObservation, "obs1", "alice")
	require.NoError(t, err)

	alice := Principal{Authenticated: true, Identifier: "alice"}
	bob := Principal{Authenticated: true, Identifier: "bob"}

	for _, permission := range []Permission{PermissionRead, PermissionUpdate, PermissionDisable, PermissionDelete} {
		ok, err := svc.HasPermission(ObjectTypeObservation, "obs1", permission, alice)
		require.NoError(t, err)
		if !ok {
			t.Errorf("owner should hold %s", permission)
		}
	}
	ok, err := svc.HasPermission(ObjectTypeObservation, "obs1", PermissionRead, bob)
	require.NoError(t, err)
	assert.False(t, ok, "non-owner should not read a draft")

	ok, err = svc.HasPermission(ObjectTypeObservation, "obs1", PermissionPublish, alice)
	require.NoError(t, err)
	assert.False(t, ok, "ownership must not convey publish")
}

func TestPublicReadToggle(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.GrantPublicRead(ObjectTypeImage, "img1")
	require.NoError(t, err)

	ok, err := svc.HasPermission(ObjectTypeImage, "img1", PermissionRead, Anonymous)
	require.NoError(t, err)
	assert.True(t, ok, "published image should be readable anonymously")

	require.NoError(t, svc.RevokePublicRead(ObjectTypeImage, "img1"))

	ok, err = svc.HasPermission(ObjectTypeImage, "img1", PermissionRead, Anonymous)
	require.NoError(t, err)
	assert.False(t, ok, "revoked image should no longer be readable anonymously")
}

func TestGrantPermissionsIdempotent(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	request := []GrantRequest{{
		ObjectType:  ObjectTypeObservation,
		ObjectID:    "obs1",
		GranteeType: GranteeTypeUser,
		Grantee:     "alice",
		Permission:  PermissionRead,
	}}
	first, err := svc.GrantPermissions(request)
	require.NoError(t, err)
	second, err := svc.GrantPermissions(request)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "identical grants must generate the same id")
	assert.Len(t, store.grants, 1, "re-granting must not accumulate records")
}

func TestRevokeObjectPermissions(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.GrantOwnership(ObjectTypeObservation, "obs1", "alice")
	require.NoError(t, err)
	_, err = svc.GrantPublicRead(ObjectTypeObservation, "obs1")
	require.NoError(t, err)
	_, err = svc.GrantOwnership(ObjectTypeObservation, "obs2", "bob")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeObjectPermissions(ObjectTypeObservation, "obs1"))

	alice := Principal{Authenticated: true, Identifier: "alice"}
	ok, err := svc.HasPermission(ObjectTypeObservation, "obs1", PermissionRead, alice)
	require.NoError(t, err)
	assert.False(t, ok, "all grants on obs1 should be gone")

	bob := Principal{Authenticated: true, Identifier: "bob"}
	ok, err = svc.HasPermission(ObjectTypeObservation, "obs2", PermissionRead, bob)
	require.NoError(t, err)
	assert.True(t, ok, "grants on other objects must be untouched")
}

func TestHasPermissionStoreErrorPropagates(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	svc := newTestService(store)

	// The fast path never touches the store.
	ok, err := svc.HasPermission(ObjectTypeObservation, "obs1", PermissionCreate, Principal{Authenticated: true, Identifier: "alice"})
	require.NoError(t, err)
	assert.True(t, ok)

	// The slow path fails loud.
	_, err = svc.HasPermission(ObjectTypeObservation, "obs1", PermissionRead, Principal{Authenticated: true, Identifier: "alice"})
	require.Error(t, err)

	_, err = svc.GrantOwnership(ObjectTypeObservation, "obs1", "alice")
	require.Error(t, err)
}

func TestGetPermissionsAssemblesCandidates(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.GrantOwnership(ObjectTypeObservation, "obs1", "alice")
	require.NoError(t, err)
	_, err = svc.GrantPublicRead(ObjectTypeObservation, "obs1")
	require.NoError(t, err)

	alice := Principal{Authenticated: true, Identifier: "alice"}
	grants, err := svc.GetPermissions(ObjectTypeObservation, "obs1", alice)
	require.NoError(t, err)

	// Role defaults (CREATE for AUTHENTICATED on OBSERVATION), the public
	// read grant, and the four ownership grants.
	assert.Len(t, grants, 6)
	for _, g := range grants {
		if g.GranteeType == string(GranteeTypeRole) && g.Grantee == string(RoleAuthenticated) {
			assert.Equal(t, WildcardObjectID, g.ObjectID, "default grants are wildcard")
		}
	}
}

func TestGrantPermissionsValidation(t *testing.T) {
	svc := newTestService(newMemoryStore())

	_, err := svc.GrantPermissions([]GrantRequest{{ObjectID: "obs1", GranteeType: GranteeTypeUser, Grantee: "alice", Permission: PermissionRead}})
	assert.ErrorIs(t, err, ErrObjectTypeRequired)

	_, err = svc.GrantPermissions([]GrantRequest{{ObjectType: ObjectTypeObservation, ObjectID: WildcardObjectID, GranteeType: GranteeTypeUser, Grantee: "alice", Permission: PermissionRead}})
	assert.ErrorIs(t, err, ErrObjectIDRequired, "wildcard grants must never be persisted")

	_, err = svc.GrantPermissions([]GrantRequest{{ObjectType: ObjectTypeObservation, ObjectID: "obs1", GranteeType: GranteeTypeUser, Permission: PermissionRead}})
	assert.ErrorIs(t, err, ErrGranteeRequired)
}
