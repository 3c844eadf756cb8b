package dao_test

import (
	"testing"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

func TestDAOSaveGrants(t *testing.T) {
	d := testDAO(t)

	objectID := newGUID(t)
	grant := models.PermissionGrant{
		ID:          auth.GrantID(auth.ObjectTypeObservation, objectID, auth.GranteeTypeUser, "alice", auth.PermissionUpdate),
		ObjectType:  string(auth.ObjectTypeObservation),
		ObjectID:    objectID,
		GranteeType: string(auth.GranteeTypeUser),
		Grantee:     "alice",
		Permission:  string(auth.PermissionUpdate),
	}

	saved, err := d.SaveGrants([]models.PermissionGrant{grant})
	if err != nil {
		t.Error(err)
	}
	if len(saved) != 1 {
		t.Errorf("expected 1 saved grant, got %d", len(saved))
	}

	// saving the same grant again is an upsert, not a duplicate
	if _, err := d.SaveGrants([]models.PermissionGrant{grant}); err != nil {
		t.Error(err)
	}
	found, err := d.FindGrants(auth.ObjectTypeObservation, objectID, auth.GranteeTypeUser, "alice")
	if err != nil {
		t.Error(err)
	}
	if len(found) != 1 {
		t.Errorf("expected 1 grant after repeat save, got %d", len(found))
	}
	if found[0].ID != grant.ID {
		t.Error("expected deterministic grant id to survive the round trip")
	}

	// delete the single grant by its component fields
	deleted, err := d.DeleteGrant(auth.ObjectTypeObservation, objectID, auth.GranteeTypeUser, "alice", auth.PermissionUpdate)
	if err != nil {
		t.Error(err)
	}
	if len(deleted) != 1 {
		t.Errorf("expected 1 deleted grant, got %d", len(deleted))
	}
	found, err = d.FindGrants(auth.ObjectTypeObservation, objectID, auth.GranteeTypeUser, "alice")
	if err != nil {
		t.Error(err)
	}
	if len(found) != 0 {
		t.Error("expected no grants after delete")
	}
}

func TestDAODeleteGrantsByObject(t *testing.T) {
	d := testDAO(t)

	objectID := newGUID(t)
	grants := make([]models.PermissionGrant, 0)
	for _, permission := range []auth.Permission{auth.PermissionRead, auth.PermissionUpdate, auth.PermissionDelete} {
		grants = append(grants, models.PermissionGrant{
			ID:          auth.GrantID(auth.ObjectTypeImage, objectID, auth.GranteeTypeUser, "bob", permission),
			ObjectType:  string(auth.ObjectTypeImage),
			ObjectID:    objectID,
			GranteeType: string(auth.GranteeTypeUser),
			Grantee:     "bob",
			Permission:  string(permission),
		})
	}
	if _, err := d.SaveGrants(grants); err != nil {
		t.Error(err)
	}

	deleted, err := d.DeleteGrantsByObject(auth.ObjectTypeImage, objectID)
	if err != nil {
		t.Error(err)
	}
	if len(deleted) != 3 {
		t.Errorf("expected 3 deleted grants, got %d", len(deleted))
	}

	found, err := d.FindGrants(auth.ObjectTypeImage, objectID, auth.GranteeTypeUser, "bob")
	if err != nil {
		t.Error(err)
	}
	if len(found) != 0 {
		t.Error("expected no grants to remain for the object")
	}
}
