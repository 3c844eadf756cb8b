package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// ObservationFacts resolves the domain facts the access service needs for a
// single observation. Satisfies auth.ObservationAccessor.
func (dao *DataAccessLayer) ObservationFacts(id string) (auth.ObservationFacts, error) {
	defer util.Time("ObservationFacts")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return auth.ObservationFacts{}, err
	}
	response, err := observationFactsInTransaction(tx, id)
	if err != nil {
		if err != ErrNoRows {
			dao.GetLogger().Error("error in ObservationFacts", zap.Error(err))
		}
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

// ObservationFactsByOwner resolves domain facts for every observation owned
// by the user. Satisfies auth.ObservationAccessor.
func (dao *DataAccessLayer) ObservationFactsByOwner(ownerID string) ([]auth.ObservationFacts, error) {
	defer util.Time("ObservationFactsByOwner")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return nil, err
	}
	response, err := observationFactsByOwnerInTransaction(tx, ownerID)
	if err != nil {
		dao.GetLogger().Error("error in ObservationFactsByOwner", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

type factsRow struct {
	ID        string `db:"id"`
	OwnedBy   string `db:"ownedBy"`
	Published bool   `db:"published"`
}

func observationFactsInTransaction(tx *sqlx.Tx, id string) (auth.ObservationFacts, error) {
	var row factsRow
	err := tx.Get(&row, `select id, ownedBy, published from observation where id = ?`, id)
	if err != nil {
		return auth.ObservationFacts{}, err
	}
	imageIDs, err := getImageIDsForObservationInTransaction(tx, id)
	if err != nil {
		return auth.ObservationFacts{}, err
	}
	return auth.ObservationFacts{ID: row.ID, OwnedBy: row.OwnedBy, Published: row.Published, ImageIDs: imageIDs}, nil
}

func observationFactsByOwnerInTransaction(tx *sqlx.Tx, ownerID string) ([]auth.ObservationFacts, error) {
	rows := []factsRow{}
	err := tx.Select(&rows, `select id, ownedBy, published from observation where ownedBy = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	facts := make([]auth.ObservationFacts, 0, len(rows))
	for _, row := range rows {
		imageIDs, err := getImageIDsForObservationInTransaction(tx, row.ID)
		if err != nil {
			return nil, err
		}
		facts = append(facts, auth.ObservationFacts{ID: row.ID, OwnedBy: row.OwnedBy, Published: row.Published, ImageIDs: imageIDs})
	}
	return facts, nil
}
