package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// GetObservationsByOwner retrieves a page of the owner's observations,
// drafts included, newest first.
func (dao *DataAccessLayer) GetObservationsByOwner(ownerID string, pagingRequest PagingRequest) (models.ObservationResultset, error) {
	defer util.Time("GetObservationsByOwner")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.ObservationResultset{}, err
	}
	response, err := getObservationsByOwnerInTransaction(tx, ownerID, pagingRequest)
	if err != nil {
		dao.GetLogger().Error("error in GetObservationsByOwner", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getObservationsByOwnerInTransaction(tx *sqlx.Tx, ownerID string, pagingRequest PagingRequest) (models.ObservationResultset, error) {
	pagingRequest = pagingRequest.normalized()
	response := models.ObservationResultset{
		PageNumber: pagingRequest.PageNumber,
		PageSize:   pagingRequest.PageSize,
	}
	if err := tx.Get(&response.TotalRows, `select count(*) from observation where ownedBy = ?`, ownerID); err != nil {
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
    where ownedBy = ?
    order by observedDate desc
    limit ? offset ?`, ownerID, pagingRequest.PageSize, pagingRequest.offset())
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
