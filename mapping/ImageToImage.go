package mapping

import (
	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
)

// MapImageToProtocol converts an internal image model into an API exposable
// protocol Image. The storage key is internal and never exposed.
func MapImageToProtocol(i *models.Image) protocol.Image {
	o := protocol.Image{}
	o.ID = i.ID
	o.OwnedBy = i.OwnedBy
	o.FileName = i.FileName
	o.ContentType = i.ContentType
	o.ContentSize = i.ContentSize
	o.ObservationID = i.ObservationID.String
	o.CreatedDate = i.CreatedDate
	return o
}

// MapAccessInfoToProtocol converts the access summary computed by the
// authorization layer into its API representation.
func MapAccessInfoToProtocol(i auth.AccessInfo) protocol.AccessInfo {
	o := protocol.AccessInfo{}
	o.AccessLevel = string(i.AccessLevel)
	o.CanEdit = i.CanEdit
	o.CanPublish = i.CanPublish
	o.CanDelete = i.CanDelete
	return o
}
