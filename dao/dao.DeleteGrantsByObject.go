package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// DeleteGrantsByObject removes every grant referencing the object and
// returns the deleted records.
func (dao *DataAccessLayer) DeleteGrantsByObject(objectType auth.ObjectType, objectID string) ([]models.PermissionGrant, error) {
	defer util.Time("DeleteGrantsByObject")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return nil, err
	}
	response, err := deleteGrantsByObjectInTransaction(tx, objectType, objectID)
	if err != nil {
		dao.GetLogger().Error("error in DeleteGrantsByObject", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func deleteGrantsByObjectInTransaction(tx *sqlx.Tx, objectType auth.ObjectType, objectID string) ([]models.PermissionGrant, error) {
	deleted := []models.PermissionGrant{}
	err := tx.Select(&deleted, `
    select
        id
        ,objectType
        ,objectId
        ,granteeType
        ,grantee
        ,permission
        ,createdDate
    from object_permission
    where objectType = ? and objectId = ?`, string(objectType), objectID)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`delete from object_permission where objectType = ? and objectId = ?`,
		string(objectType), objectID); err != nil {
		return nil, err
	}
	return deleted, nil
}
