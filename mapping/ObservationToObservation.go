package mapping

import (
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
)

// MapObservationToProtocol converts an internal observation model into an API
// exposable protocol Observation
func MapObservationToProtocol(i *models.Observation) protocol.Observation {
	o := protocol.Observation{}
	o.ID = i.ID
	o.Title = i.Title
	o.Description = i.Description
	o.Latitude = i.Latitude
	o.Longitude = i.Longitude
	o.ObservedDate = i.ObservedDate
	o.OwnedBy = i.OwnedBy
	o.Published = i.Published
	o.CreatedDate = i.CreatedDate
	o.ModifiedDate = i.ModifiedDate
	o.ImageIDs = i.ImageIDs
	return o
}

// MapObservationResultsetToProtocol converts a page of internal observations
// into an API exposable resultset, computing the page metrics from the totals
// reported by the data store.
func MapObservationResultsetToProtocol(i *models.ObservationResultset) protocol.ObservationResultset {
	o := protocol.ObservationResultset{}
	o.TotalRows = i.TotalRows
	o.PageNumber = i.PageNumber
	o.PageSize = i.PageSize
	if i.PageSize > 0 {
		o.PageCount = (i.TotalRows + i.PageSize - 1) / i.PageSize
	}
	o.Observations = make([]protocol.Observation, 0, len(i.Observations))
	for idx := range i.Observations {
		o.Observations = append(o.Observations, MapObservationToProtocol(&i.Observations[idx]))
	}
	o.PageRows = len(o.Observations)
	return o
}

// MapCreateObservationRequestToModel converts an API create request into an
// internal observation model. The caller supplies the id and owner.
func MapCreateObservationRequestToModel(i *protocol.CreateObservationRequest) models.Observation {
	o := models.Observation{}
	o.Title = i.Title
	o.Description = i.Description
	o.Latitude = i.Latitude
	o.Longitude = i.Longitude
	o.ObservedDate = i.ObservedDate
	o.ImageIDs = i.ImageIDs
	return o
}

// MapUpdateObservationRequestToModel applies an API update request onto an
// existing internal observation model, leaving ownership and publication
// state untouched.
func MapUpdateObservationRequestToModel(existing *models.Observation, i *protocol.UpdateObservationRequest) models.Observation {
	o := *existing
	o.Title = i.Title
	o.Description = i.Description
	o.Latitude = i.Latitude
	o.Longitude = i.Longitude
	o.ObservedDate = i.ObservedDate
	o.ImageIDs = i.ImageIDs
	return o
}

// MapPagingRequestToDAO converts protocol paging to the data store paging
// request.
func MapPagingRequestToDAO(i protocol.PagingRequest) dao.PagingRequest {
	return dao.PagingRequest{PageNumber: i.PageNumber, PageSize: i.PageSize}
}
