package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/amazon"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/events"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/server"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/services/kafka"
)

// All loggers are derived from the global one
var logger = config.RootLogger

func main() {

	cliParser := cli.NewApp()
	cliParser.Name = "report-mapper"
	cliParser.Usage = "report-mapper-backend binary"
	cliParser.Version = "1.0"

	cliParser.Commands = []cli.Command{
		{
			Name:  "env",
			Usage: "Print all environment variables",
			Action: func(ctx *cli.Context) error {
				config.PrintEnvironment()
				return nil
			},
		},
		{
			Name:  "schema",
			Usage: "Print the database schema DDL",
			Action: func(ctx *cli.Context) error {
				fmt.Print(dao.SchemaDDL)
				return nil
			},
		},
	}

	cliParser.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "conf",
			Usage: "Path to yaml configuration file.",
			Value: "report-mapper.yml",
		},
	}

	cliParser.Action = func(c *cli.Context) error {
		startApplication(c.String("conf"))
		return nil
	}

	cliParser.Run(os.Args)
}

func startApplication(confPath string) {

	conf, err := config.NewAppConfiguration(confPath)
	if err != nil {
		logger.Error("error loading configuration", zap.String("path", confPath), zap.Error(err))
		os.Exit(1)
	}

	app, err := server.NewAppServer(conf.ServerSettings)
	if err != nil {
		logger.Error("error creating server", zap.Error(err))
		os.Exit(1)
	}

	if err := configureDAO(app, conf.DatabaseConnection); err != nil {
		logger.Error("error configuring DAO, check environment variable settings for RM_DB_*", zap.Error(err))
		os.Exit(1)
	}

	configureImageStore(app, conf.S3Settings)
	configureEventQueue(app, conf.EventQueue)
	configureAuthorization(app)

	httpServer := &http.Server{
		Addr:           app.Addr,
		Handler:        app,
		ReadTimeout:    600 * time.Second,
		WriteTimeout:   600 * time.Second,
		MaxHeaderBytes: 1 << 20, // This prevents clients from DOS'ing us
	}

	logger.Info("starting server", zap.String("addr", app.Addr))
	// This blocks until there is an error to stop the server
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatal("stopped server", zap.Error(err))
	}
}

func configureDAO(app *server.AppServer, conf config.DatabaseConfiguration) error {
	d, err := dao.NewDataAccessLayer(conf, dao.WithLogger(logger))
	if err != nil {
		return err
	}
	app.RootDAO = d
	return nil
}

func configureImageStore(app *server.AppServer, conf config.S3Configuration) {
	if len(conf.Bucket) == 0 {
		logger.Info("image store is in-memory because there is no bucket name")
		app.Images = amazon.NewFakeImageStore()
		return
	}
	sess := amazon.NewAWSSession(conf, logger)
	app.Images = amazon.NewS3ImageStore(sess, conf, logger)
}

func configureEventQueue(app *server.AppServer, conf config.EventQueueConfiguration) {
	if len(conf.KafkaAddrs) == 0 {
		app.EventQueue = kafka.NewFakeAsyncProducer(logger)
		return
	}
	var err error
	var queue events.Publisher
	queue, err = kafka.NewAsyncProducer(conf.KafkaAddrs,
		kafka.WithLogger(logger),
		kafka.WithTopic(conf.Topic),
		kafka.WithPublishActions([]string{"*"}, nil),
	)
	if err != nil {
		logger.Fatal("could not connect to kafka", zap.Strings("addrs", conf.KafkaAddrs), zap.Error(err))
	}
	app.EventQueue = queue
	logger.Info("kafka producer connected", zap.Strings("addrs", conf.KafkaAddrs), zap.String("topic", conf.Topic))
}

func configureAuthorization(app *server.AppServer) {
	permissions := auth.NewPermissionService(
		auth.NewDefaultPermissionTable(),
		app.RootDAO,
		auth.WithPermissionLogger(logger),
	)
	app.Permissions = permissions
	app.Access = auth.NewObservationAccess(permissions, app.RootDAO, auth.WithAccessLogger(logger))
}
