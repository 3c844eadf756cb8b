package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// SaveGrants persists the supplied grants, upserting on id. Because a grant
// id is derived from its identifying fields, saving an identical grant twice
// leaves a single row in place. Concurrent identical saves race only at this
// upsert and converge to the same record.
func (dao *DataAccessLayer) SaveGrants(grants []models.PermissionGrant) ([]models.PermissionGrant, error) {
	defer util.Time("SaveGrants")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return nil, err
	}
	response, err := saveGrantsInTransaction(tx, grants)
	if err != nil {
		dao.GetLogger().Error("error in SaveGrants", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func saveGrantsInTransaction(tx *sqlx.Tx, grants []models.PermissionGrant) ([]models.PermissionGrant, error) {
	saveStatement, err := tx.Preparex(`insert into object_permission set
        id = ?
        ,objectType = ?
        ,objectId = ?
        ,granteeType = ?
        ,grantee = ?
        ,permission = ?
    on duplicate key update
        objectType = values(objectType)
    `)
	if err != nil {
		return nil, err
	}
	defer saveStatement.Close()
	saved := make([]models.PermissionGrant, 0, len(grants))
	for _, grant := range grants {
		if _, err := saveStatement.Exec(grant.ID, grant.ObjectType, grant.ObjectID,
			grant.GranteeType, grant.Grantee, grant.Permission); err != nil {
			return nil, err
		}
		var dbGrant models.PermissionGrant
		err = tx.Get(&dbGrant, `
    select
        id
        ,objectType
        ,objectId
        ,granteeType
        ,grantee
        ,permission
        ,createdDate
    from object_permission
    where id = ?`, grant.ID)
		if err != nil {
			return nil, err
		}
		saved = append(saved, dbGrant)
	}
	return saved, nil
}
