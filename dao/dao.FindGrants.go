package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// FindGrants retrieves the persisted grants matching the object and grantee.
func (dao *DataAccessLayer) FindGrants(objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string) ([]models.PermissionGrant, error) {
	defer util.Time("FindGrants")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return nil, err
	}
	response, err := findGrantsInTransaction(tx, objectType, objectID, granteeType, grantee)
	if err != nil {
		dao.GetLogger().Error("error in FindGrants", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func findGrantsInTransaction(tx *sqlx.Tx, objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string) ([]models.PermissionGrant, error) {
	response := []models.PermissionGrant{}
	query := `
    select
        id
        ,objectType
        ,objectId
        ,granteeType
        ,grantee
        ,permission
        ,createdDate
    from object_permission
    where
        objectType = ?
        and objectId = ?
        and granteeType = ?
        and grantee = ?`
	err := tx.Select(&response, query, string(objectType), objectID, string(granteeType), grantee)
	return response, err
}
