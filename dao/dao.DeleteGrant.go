package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// DeleteGrant removes the single grant identified by the five-field tuple,
// returning the deleted record. Deleting a grant that does not exist is not
// an error; the returned slice is empty.
func (dao *DataAccessLayer) DeleteGrant(objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string, permission auth.Permission) ([]models.PermissionGrant, error) {
	defer util.Time("DeleteGrant")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return nil, err
	}
	response, err := deleteGrantInTransaction(tx, objectType, objectID, granteeType, grantee, permission)
	if err != nil {
		dao.GetLogger().Error("error in DeleteGrant", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func deleteGrantInTransaction(tx *sqlx.Tx, objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string, permission auth.Permission) ([]models.PermissionGrant, error) {
	id := auth.GrantID(objectType, objectID, granteeType, grantee, permission)
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
    where id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return deleted, nil
	}
	if _, err := tx.Exec(`delete from object_permission where id = ?`, id); err != nil {
		return nil, err
	}
	return deleted, nil
}
