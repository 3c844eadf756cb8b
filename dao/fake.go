package dao

import (
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// FakeDAO is suitable for tests. Add fields to this struct to hold fake
// responses for each of the methods that FakeDAO will implement. These fake
// response fields can be explicitly set, or setup functions can be defined.
type FakeDAO struct {
	Err                  error
	GrantErr             error
	Observation          models.Observation
	ObservationResultset models.ObservationResultset
	Image                models.Image
	Grants               []models.PermissionGrant
	Facts                auth.ObservationFacts
	FactsByOwner         []auth.ObservationFacts
	Logger               *zap.Logger
}

// CreateObservation for FakeDAO.
func (fake *FakeDAO) CreateObservation(observation *models.Observation) (models.Observation, error) {
	return fake.Observation, fake.Err
}

// GetObservation for FakeDAO.
func (fake *FakeDAO) GetObservation(id string) (models.Observation, error) {
	return fake.Observation, fake.Err
}

// GetObservations for FakeDAO.
func (fake *FakeDAO) GetObservations(pagingRequest PagingRequest) (models.ObservationResultset, error) {
	return fake.ObservationResultset, fake.Err
}

// GetObservationsByOwner for FakeDAO.
func (fake *FakeDAO) GetObservationsByOwner(ownerID string, pagingRequest PagingRequest) (models.ObservationResultset, error) {
	return fake.ObservationResultset, fake.Err
}

// UpdateObservation for FakeDAO.
func (fake *FakeDAO) UpdateObservation(observation *models.Observation) error {
	return fake.Err
}

// DeleteObservation for FakeDAO.
func (fake *FakeDAO) DeleteObservation(id string) error {
	return fake.Err
}

// CreateImage for FakeDAO.
func (fake *FakeDAO) CreateImage(image *models.Image) (models.Image, error) {
	return fake.Image, fake.Err
}

// GetImage for FakeDAO.
func (fake *FakeDAO) GetImage(id string) (models.Image, error) {
	return fake.Image, fake.Err
}

// DeleteImage for FakeDAO.
func (fake *FakeDAO) DeleteImage(id string) error {
	return fake.Err
}

// FindGrants for FakeDAO.
func (fake *FakeDAO) FindGrants(objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string) ([]models.PermissionGrant, error) {
	var found []models.PermissionGrant
	for _, g := range fake.Grants {
		if g.ObjectType == string(objectType) && g.ObjectID == objectID &&
			g.GranteeType == string(granteeType) && g.Grantee == grantee {
			found = append(found, g)
		}
	}
	return found, fake.GrantErr
}

// SaveGrants for FakeDAO.
func (fake *FakeDAO) SaveGrants(grants []models.PermissionGrant) ([]models.PermissionGrant, error) {
	if fake.GrantErr != nil {
		return nil, fake.GrantErr
	}
	for _, g := range grants {
		exists := false
		for _, held := range fake.Grants {
			if held.ID == g.ID {
				exists = true
				break
			}
		}
		if !exists {
			fake.Grants = append(fake.Grants, g)
		}
	}
	return grants, nil
}

// DeleteGrantsByObject for FakeDAO.
func (fake *FakeDAO) DeleteGrantsByObject(objectType auth.ObjectType, objectID string) ([]models.PermissionGrant, error) {
	if fake.GrantErr != nil {
		return nil, fake.GrantErr
	}
	var deleted []models.PermissionGrant
	var kept []models.PermissionGrant
	for _, g := range fake.Grants {
		if g.ObjectType == string(objectType) && g.ObjectID == objectID {
			deleted = append(deleted, g)
		} else {
			kept = append(kept, g)
		}
	}
	fake.Grants = kept
	return deleted, nil
}

// DeleteGrant for FakeDAO.
func (fake *FakeDAO) DeleteGrant(objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string, permission auth.Permission) ([]models.PermissionGrant, error) {
	if fake.GrantErr != nil {
		return nil, fake.GrantErr
	}
	id := auth.GrantID(objectType, objectID, granteeType, grantee, permission)
	var deleted []models.PermissionGrant
	var kept []models.PermissionGrant
	for _, g := range fake.Grants {
		if g.ID == id {
			deleted = append(deleted, g)
		} else {
			kept = append(kept, g)
		}
	}
	fake.Grants = kept
	return deleted, nil
}

// ObservationFacts for FakeDAO.
func (fake *FakeDAO) ObservationFacts(id string) (auth.ObservationFacts, error) {
	return fake.Facts, fake.Err
}

// ObservationFactsByOwner for FakeDAO.
func (fake *FakeDAO) ObservationFactsByOwner(ownerID string) ([]auth.ObservationFacts, error) {
	return fake.FactsByOwner, fake.Err
}

// GetLogger for FakeDAO.
func (fake *FakeDAO) GetLogger() *zap.Logger {
	if fake.Logger == nil {
		return zap.NewNop()
	}
	return fake.Logger
}
