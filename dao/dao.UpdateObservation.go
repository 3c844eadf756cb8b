package dao

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// UpdateObservation updates the mutable fields of an observation and
// reconciles its image attachments. The published flag is updated here too;
// callers gate publish transitions before reaching the DAO.
func (dao *DataAccessLayer) UpdateObservation(observation *models.Observation) error {
	defer util.Time("UpdateObservation")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = updateObservationInTransaction(tx, observation)
	if err != nil {
		dao.GetLogger().Error("error in UpdateObservation", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func updateObservationInTransaction(tx *sqlx.Tx, observation *models.Observation) error {
	updateStatement, err := tx.Preparex(`update observation set
        title = ?
        ,description = ?
        ,latitude = ?
        ,longitude = ?
        ,observedDate = ?
        ,published = ?
    where id = ?`)
	if err != nil {
		return err
	}
	defer updateStatement.Close()
	result, err := updateStatement.Exec(observation.Title, observation.Description,
		observation.Latitude, observation.Longitude, observation.ObservedDate,
		observation.Published, observation.ID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		// RowsAffected is zero both for a missing row and for a no-op update,
		// so confirm the row exists before declaring failure.
		var exists int
		if err := tx.Get(&exists, `select count(*) from observation where id = ?`, observation.ID); err != nil {
			return err
		}
		if exists == 0 {
			return errors.New("observation does not exist")
		}
	}
	// Detach images no longer referenced, then claim the referenced set.
	if _, err := tx.Exec(`update image set observationId = null where observationId = ?`, observation.ID); err != nil {
		return err
	}
	if err := attachImagesInTransaction(tx, observation.ID, observation.OwnedBy, observation.ImageIDs); err != nil {
		return err
	}
	updated, err := getObservationInTransaction(tx, observation.ID)
	if err != nil {
		return err
	}
	*observation = updated
	return nil
}
