package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// DeleteImage removes an image metadata row.
func (dao *DataAccessLayer) DeleteImage(id string) error {
	defer util.Time("DeleteImage")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = deleteImageInTransaction(tx, id)
	if err != nil {
		dao.GetLogger().Error("error in DeleteImage", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func deleteImageInTransaction(tx *sqlx.Tx, id string) error {
	result, err := tx.Exec(`delete from image where id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNoRows
	}
	return nil
}
