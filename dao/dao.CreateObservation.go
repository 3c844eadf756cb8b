package dao

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// CreateObservation inserts a new observation row and attaches any supplied
// images that belong to the same owner.
func (dao *DataAccessLayer) CreateObservation(observation *models.Observation) (models.Observation, error) {
	defer util.Time("CreateObservation")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.Observation{}, err
	}
	response, err := createObservationInTransaction(tx, observation)
	if err != nil {
		dao.GetLogger().Error("error in CreateObservation", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func createObservationInTransaction(tx *sqlx.Tx, observation *models.Observation) (models.Observation, error) {
	var dbObservation models.Observation
	if len(observation.ID) == 0 {
		return dbObservation, errors.New("cannot create observation without an id")
	}
	if len(observation.OwnedBy) == 0 {
		return dbObservation, errors.New("cannot create observation without an owner")
	}
	if observation.ObservedDate.IsZero() {
		observation.ObservedDate = time.Now().UTC()
	}
	createStatement, err := tx.Preparex(`insert into observation set
        id = ?
        ,title = ?
        ,description = ?
        ,latitude = ?
        ,longitude = ?
        ,observedDate = ?
        ,ownedBy = ?
        ,published = 0
    `)
	if err != nil {
		return dbObservation, err
	}
	defer createStatement.Close()
	if _, err := createStatement.Exec(observation.ID, observation.Title, observation.Description,
		observation.Latitude, observation.Longitude, observation.ObservedDate,
		observation.OwnedBy); err != nil {
		return dbObservation, err
	}
	if err := attachImagesInTransaction(tx, observation.ID, observation.OwnedBy, observation.ImageIDs); err != nil {
		return dbObservation, err
	}
	return getObservationInTransaction(tx, observation.ID)
}

// attachImagesInTransaction binds images to the observation. Only images
// uploaded by the same owner and not already attached elsewhere are claimed.
func attachImagesInTransaction(tx *sqlx.Tx, observationID string, ownedBy string, imageIDs []string) error {
	if len(imageIDs) == 0 {
		return nil
	}
	attachStatement, err := tx.Preparex(`update image set observationId = ?
        where id = ? and ownedBy = ? and (observationId is null or observationId = ?)`)
	if err != nil {
		return err
	}
	defer attachStatement.Close()
	for _, imageID := range imageIDs {
		result, err := attachStatement.Exec(observationID, imageID, ownedBy, observationID)
		if err != nil {
			return err
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return errors.New("image " + imageID + " cannot be attached to observation " + observationID)
		}
	}
	return nil
}
