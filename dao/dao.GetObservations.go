package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// GetObservations retrieves a page of published observations, newest first.
func (dao *DataAccessLayer) GetObservations(pagingRequest PagingRequest) (models.ObservationResultset, error) {
	defer util.Time("GetObservations")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.ObservationResultset{}, err
	}
	response, err := getObservationsInTransaction(tx, pagingRequest)
	if err != nil {
		dao.GetLogger().Error("error in GetObservations", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getObservationsInTransaction(tx *sqlx.Tx, pagingRequest PagingRequest) (models.ObservationResultset, error) {
	pagingRequest = pagingRequest.normalized()
	response := models.ObservationResultset{
		PageNumber: pagingRequest.PageNumber,
		PageSize:   pagingRequest.PageSize,
	}
	if err := tx.Get(&response.TotalRows, `select count(*) from observation where published = 1`); err != nil {
		return response, err
	}
	response.Observations = []models.Observation{}
	err := tx.Select(&response.Observations, `
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
    where published = 1
    order by observedDate desc
    limit ? offset ?`, pagingRequest.PageSize, pagingRequest.offset())
	if err != nil {
		return response, err
	}
	for i, observation := range response.Observations {
		imageIDs, err := getImageIDsForObservationInTransaction(tx, observation.ID)
		if err != nil {
			return response, err
		}
		response.Observations[i].ImageIDs = imageIDs
	}
	return response, nil
}
