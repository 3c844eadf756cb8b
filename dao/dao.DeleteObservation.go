package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// DeleteObservation removes an observation row. Attached images revert to
// unattached uploads; their rows and content are managed separately.
func (dao *DataAccessLayer) DeleteObservation(id string) error {
	defer util.Time("DeleteObservation")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = deleteObservationInTransaction(tx, id)
	if err != nil {
		dao.GetLogger().Error("error in DeleteObservation", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func deleteObservationInTransaction(tx *sqlx.Tx, id string) error {
	if _, err := tx.Exec(`update image set observationId = null where observationId = ?`, id); err != nil {
		return err
	}
	result, err := tx.Exec(`delete from observation where id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNoRows
	}
	return nil
}
