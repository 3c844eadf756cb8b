package dao

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// SchemaVersion marks compatibility with previously created databases.
// On startup, we should be checking the schema, and raise some alarm if
// the schema is out of date, or trigger a migration, etc.
var SchemaVersion = "20260830"

// ErrNoRows is returned when a lookup matched nothing.
var ErrNoRows = sql.ErrNoRows

// DAO defines the contract our app has with the database.
type DAO interface {
	CreateObservation(observation *models.Observation) (models.Observation, error)
	GetObservation(id string) (models.Observation, error)
	GetObservations(pagingRequest PagingRequest) (models.ObservationResultset, error)
	GetObservationsByOwner(ownerID string, pagingRequest PagingRequest) (models.ObservationResultset, error)
	UpdateObservation(observation *models.Observation) error
	DeleteObservation(id string) error
	CreateImage(image *models.Image) (models.Image, error)
	GetImage(id string) (models.Image, error)
	DeleteImage(id string) error
	FindGrants(objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string) ([]models.PermissionGrant, error)
	SaveGrants(grants []models.PermissionGrant) ([]models.PermissionGrant, error)
	DeleteGrantsByObject(objectType auth.ObjectType, objectID string) ([]models.PermissionGrant, error)
	DeleteGrant(objectType auth.ObjectType, objectID string, granteeType auth.GranteeType, grantee string, permission auth.Permission) ([]models.PermissionGrant, error)
	ObservationFacts(id string) (auth.ObservationFacts, error)
	ObservationFactsByOwner(ownerID string) ([]auth.ObservationFacts, error)
	GetLogger() *zap.Logger
}

// PagingRequest describes a requested page of a listing.
type PagingRequest struct {
	// PageNumber is the requested page, starting at 1.
	PageNumber int
	// PageSize is the number of rows per page.
	PageSize int
}

func (p PagingRequest) normalized() PagingRequest {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 || p.PageSize > 500 {
		p.PageSize = 100
	}
	return p
}

func (p PagingRequest) offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// DataAccessLayer is a concrete DAO implementation with a true DB connection.
type DataAccessLayer struct {
	// MetadataDB is the connection.
	MetadataDB *sqlx.DB
	// Logger has a default, but can be updated by passing options to constructor.
	Logger *zap.Logger
}

// Opt sets an option on DataAccessLayer.
type Opt func(*DataAccessLayer)

// WithLogger sets a custom logger on DataAccessLayer.
func WithLogger(logger *zap.Logger) Opt {
	return func(d *DataAccessLayer) {
		d.Logger = logger
	}
}

// NewDataAccessLayer constructs a new DataAccessLayer with defaults and options.
func NewDataAccessLayer(conf config.DatabaseConfiguration, opts ...Opt) (*DataAccessLayer, error) {

	db, err := conf.GetDatabaseHandle()
	if err != nil {
		return nil, err
	}
	d := DataAccessLayer{MetadataDB: db}

	defaults(&d)
	for _, opt := range opts {
		opt(&d)
	}

	err = pingDB(&d, conf)
	if err != nil {
		return nil, fmt.Errorf("could not ping database: %v", err)
	}

	return &d, nil
}

func defaults(d *DataAccessLayer) {
	d.Logger = config.RootLogger
}

// GetLogger is a logger, probably for this session
func (d *DataAccessLayer) GetLogger() *zap.Logger {
	return d.Logger
}

func daoCompileCheck() DAO {
	// function exists to make compiler complain when interface changes.
	return &DataAccessLayer{}
}

// pingDB verifies the connection, retrying per the configured attempt count
// and delay. The first attempt is immediate so an unreachable database fails
// fast when retries are set to one.
func pingDB(d *DataAccessLayer, conf config.DatabaseConfiguration) error {

	logger := d.GetLogger()

	max := conf.ConnectRetries
	if max < 1 {
		max = 1
	}
	sleep := time.Duration(conf.ConnectRetryDelay) * time.Second

	var err error

	for attempts := 1; attempts <= max; attempts++ {

		err = d.MetadataDB.Ping()
		if err == nil {
			return nil
		}
		if attempts < max {
			logger.Info("db sleep for retry", zap.Int("attempt", attempts))
			time.Sleep(sleep)
		}

	}
	return err
}
