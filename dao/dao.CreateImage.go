package dao

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// CreateImage inserts a new image metadata row. The content itself is
// written to the object store before the row is created.
func (dao *DataAccessLayer) CreateImage(image *models.Image) (models.Image, error) {
	defer util.Time("CreateImage")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.Image{}, err
	}
	response, err := createImageInTransaction(tx, image)
	if err != nil {
		dao.GetLogger().Error("error in CreateImage", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func createImageInTransaction(tx *sqlx.Tx, image *models.Image) (models.Image, error) {
	var dbImage models.Image
	if len(image.ID) == 0 {
		return dbImage, errors.New("cannot create image without an id")
	}
	if len(image.OwnedBy) == 0 {
		return dbImage, errors.New("cannot create image without an owner")
	}
	if len(image.StorageKey) == 0 {
		return dbImage, errors.New("cannot create image without a storage key")
	}
	createStatement, err := tx.Preparex(`insert into image set
        id = ?
        ,ownedBy = ?
        ,fileName = ?
        ,contentType = ?
        ,contentSize = ?
        ,storageKey = ?
    `)
	if err != nil {
		return dbImage, err
	}
	defer createStatement.Close()
	if _, err := createStatement.Exec(image.ID, image.OwnedBy, image.FileName,
		image.ContentType, image.ContentSize, image.StorageKey); err != nil {
		return dbImage, err
	}
	return getImageInTransaction(tx, image.ID)
}
