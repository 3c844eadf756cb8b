package server_test

import (
	"github.com/OpenBuildRight/report-mapper-backend-sub000/amazon"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/server"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/services/kafka"
)

const basePath = "/services/report-mapper"

// testIDs are 32 hex characters so they match the route regexes.
const (
	testObservationID = "0123456789abcdef0123456789abcdef"
	testImageID       = "fedcba9876543210fedcba9876543210"
)

type testServer struct {
	App    *server.AppServer
	DAO    *dao.FakeDAO
	Store  *amazon.FakeImageStore
	Queue  *kafka.FakeAsyncProducer
	Perms  *auth.PermissionService
	Access *auth.ObservationAccess
}

func newTestServer(fake *dao.FakeDAO) testServer {
	conf := config.ServerSettingsConfiguration{
		ListenBind: "127.0.0.1",
		ListenPort: "4430",
		BasePath:   basePath,
	}
	app, err := server.NewAppServer(conf)
	if err != nil {
		panic(err)
	}
	perms := auth.NewPermissionService(auth.NewDefaultPermissionTable(), fake)
	access := auth.NewObservationAccess(perms, fake)
	store := amazon.NewFakeImageStore()
	queue := kafka.NewFakeAsyncProducer(nil)
	app.RootDAO = fake
	app.Permissions = perms
	app.Access = access
	app.Images = store
	app.EventQueue = queue
	return testServer{App: app, DAO: fake, Store: store, Queue: queue, Perms: perms, Access: access}
}
