package auth

import (
	"encoding/hex"
	"testing"
)

func TestGrantIDDeterministic(t *testing.T) {
	a := GrantID(ObjectTypeObservation, "obs1", GranteeTypeUser, "alice", PermissionRead)
	b := GrantID(ObjectTypeObservation, "obs1", GranteeTypeUser, "alice", PermissionRead)
	if a != b {
		t.Errorf("same fields must hash to same id, got %s and %s", a, b)
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Errorf("id must be hex encoded: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("expected fixed-width id, got length %d", len(a))
	}
}

func TestGrantIDDistinguishesFields(t *testing.T) {
	base := GrantID(ObjectTypeObservation, "obs1", GranteeTypeUser, "alice", PermissionRead)
	variants := []string{
		GrantID(ObjectTypeImage, "obs1", GranteeTypeUser, "alice", PermissionRead),
		GrantID(ObjectTypeObservation, "obs2", GranteeTypeUser, "alice", PermissionRead),
		GrantID(ObjectTypeObservation, "obs1", GranteeTypeRole, "alice", PermissionRead),
		GrantID(ObjectTypeObservation, "obs1", GranteeTypeUser, "bob", PermissionRead),
		GrantID(ObjectTypeObservation, "obs1", GranteeTypeUser, "alice", PermissionUpdate),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d should differ from base id", i)
		}
	}
}

func TestNewGrantCarriesFields(t *testing.T) {
	g := NewGrant(ObjectTypeImage, "img1", GranteeTypeRole, string(RolePublic), PermissionRead)
	if g.ObjectType != "IMAGE" || g.ObjectID != "img1" || g.GranteeType != "ROLE" || g.Grantee != "PUBLIC" || g.Permission != "READ" {
		t.Errorf("unexpected grant fields: %+v", g)
	}
	if g.ID != GrantID(ObjectTypeImage, "img1", GranteeTypeRole, string(RolePublic), PermissionRead) {
		t.Error("grant id does not match computed id")
	}
}
