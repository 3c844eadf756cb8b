package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// GetImage retrieves a single image metadata row.
func (dao *DataAccessLayer) GetImage(id string) (models.Image, error) {
	defer util.Time("GetImage")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.Image{}, err
	}
	response, err := getImageInTransaction(tx, id)
	if err != nil {
		if err != ErrNoRows {
			dao.GetLogger().Error("error in GetImage", zap.Error(err))
		}
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getImageInTransaction(tx *sqlx.Tx, id string) (models.Image, error) {
	var dbImage models.Image
	err := tx.Get(&dbImage, `
    select
        id
        ,ownedBy
        ,fileName
        ,contentType
        ,contentSize
        ,storageKey
        ,observationId
        ,createdDate
    from image
    where id = ?`, id)
	return dbImage, err
}
