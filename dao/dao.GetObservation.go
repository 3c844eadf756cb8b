package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// GetObservation retrieves a single observation with its image ids.
func (dao *DataAccessLayer) GetObservation(id string) (models.Observation, error) {
	defer util.Time("GetObservation")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.Observation{}, err
	}
	response, err := getObservationInTransaction(tx, id)
	if err != nil {
		if err != ErrNoRows {
			dao.GetLogger().Error("error in GetObservation", zap.Error(err))
		}
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getObservationInTransaction(tx *sqlx.Tx, id string) (models.Observation, error) {
	var dbObservation models.Observation
	err := tx.Get(&dbObservation, `
    select
        id
        ,title
        ,description
        ,latitude
        ,longitude
        ,observedDate
        ,ownedBy
        ,published
        ,createdDate
        ,modifiedDate
    from observation
    where id = ?`, id)
	if err != nil {
		return dbObservation, err
	}
	dbObservation.ImageIDs, err = getImageIDsForObservationInTransaction(tx, id)
	return dbObservation, err
}

func getImageIDsForObservationInTransaction(tx *sqlx.Tx, observationID string) ([]string, error) {
	imageIDs := []string{}
	err := tx.Select(&imageIDs, `select id from image where observationId = ? order by createdDate`, observationID)
	return imageIDs, err
}
