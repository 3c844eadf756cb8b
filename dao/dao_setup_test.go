package dao_test

import (
	"sync"
	"testing"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

var (
	setupOnce sync.Once
	setupErr  error
	d         *dao.DataAccessLayer
)

// testDAO returns a DataAccessLayer connected to a locally-running database.
// Connection settings come from the RM_DB_* environment variables. Tests that
// call this are skipped in short mode.
func testDAO(t *testing.T) *dao.DataAccessLayer {
	t.Helper()
	if testing.Short() {
		t.Skip()
	}
	setupOnce.Do(func() {
		conf := config.AppConfiguration{
			DatabaseConnection: config.DatabaseConfiguration{
				Host:     config.GetEnvOrDefault(config.RM_DB_HOST, "127.0.0.1"),
				Port:     config.GetEnvOrDefault(config.RM_DB_PORT, "3306"),
				Username: config.GetEnvOrDefault(config.RM_DB_USERNAME, "reportmapper"),
				Password: config.GetEnvOrDefault(config.RM_DB_PASSWORD, "reportmapper"),
				Schema:   config.GetEnvOrDefault(config.RM_DB_SCHEMA, "reportmapper"),
				// skip quickly when no database is running
				ConnectRetries: 1,
			},
		}
		d, setupErr = dao.NewDataAccessLayer(conf.DatabaseConnection)
	})
	if setupErr != nil {
		t.Skipf("database not available: %v", setupErr)
	}
	return d
}

func newGUID(t *testing.T) string {
	t.Helper()
	guid, err := util.NewGUID()
	if err != nil {
		t.Fatal(err)
	}
	return guid
}
