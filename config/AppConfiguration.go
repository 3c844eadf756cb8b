package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

var (
	defaultDBDriver   = "mysql"
	defaultDBProtocol = "tcp"
	defaultDBHost     = "metadatadb"
	defaultDBPort     = "3306"
	defaultDBSchema   = "reportmapper"
)

const (
	defaultDBConnectRetries    = 20
	defaultDBConnectRetryDelay = 3
)

// AppConfiguration is a structure that defines the known configuration format
// for this application. Values load from a YAML file and are overridden by
// RM_ environment variables.
type AppConfiguration struct {
	DatabaseConnection DatabaseConfiguration       `yaml:"database"`
	ServerSettings     ServerSettingsConfiguration `yaml:"server"`
	S3Settings         S3Configuration             `yaml:"s3"`
	EventQueue         EventQueueConfiguration     `yaml:"event_queue"`
	LogLevel           string                      `yaml:"log_level"`
}

// DatabaseConfiguration is a structure that defines the attributes
// needed for setting up database connection
type DatabaseConfiguration struct {
	// Driver specifies the database driver. Only "mysql" is supported.
	Driver string `yaml:"driver"`
	// Username is the database username.
	Username string `yaml:"username"`
	// Password is the database password.
	Password string `yaml:"password"`
	// Protocol specifies the network protocol. Only "tcp" is supported.
	Protocol string `yaml:"protocol"`
	// Host is the database hostname.
	Host string `yaml:"host"`
	// Port is the database port. Commonly 3306 for MySQL.
	Port string `yaml:"port"`
	// Schema is the database name to connect to. The report-mapper default
	// is "reportmapper".
	Schema string `yaml:"schema"`
	// Params are custom connection params injected into the DSN. These
	// will vary depending on your server's configuration.
	Params string `yaml:"conn_params"`
	// MaxIdleConns caps idle pooled connections.
	MaxIdleConns int `yaml:"max_idle_conns"`
	// MaxOpenConns caps open connections to the server.
	MaxOpenConns int `yaml:"max_open_conns"`
	// ConnectRetries is the number of ping attempts made at startup before
	// giving up on the database. The first attempt is immediate.
	ConnectRetries int `yaml:"connect_retries"`
	// ConnectRetryDelay is the wait in seconds between ping attempts.
	ConnectRetryDelay int `yaml:"connect_retry_delay"`
}

// ServerSettingsConfiguration holds the attributes needed for the HTTP
// listener.
type ServerSettingsConfiguration struct {
	// ListenBind is the network address the server binds to.
	ListenBind string `yaml:"bind"`
	// ListenPort is the TCP port the server listens on.
	ListenPort string `yaml:"port"`
	// BasePath is the URL prefix all service routes are mounted under.
	BasePath string `yaml:"base_path"`
}

// S3Configuration holds the attributes needed to reach the image content
// bucket.
type S3Configuration struct {
	// Region is the AWS region of the bucket.
	Region string `yaml:"region"`
	// Endpoint overrides the S3 endpoint, for non-AWS S3 implementations.
	Endpoint string `yaml:"endpoint"`
	// Bucket is the name of the bucket holding image content.
	Bucket string `yaml:"bucket"`
	// KeyPrefix is prepended to every stored key.
	KeyPrefix string `yaml:"key_prefix"`
	// AccessKeyID is a static credential. Leave empty to use the IAM role.
	AccessKeyID string `yaml:"access_key_id"`
	// SecretAccessKey is a static credential. Leave empty to use the IAM role.
	SecretAccessKey string `yaml:"secret_access_key"`
}

// EventQueueConfiguration holds the attributes needed to publish lifecycle
// events to Kafka. An empty broker list disables publishing.
type EventQueueConfiguration struct {
	// KafkaAddrs is a list of host:port broker addresses.
	KafkaAddrs []string `yaml:"kafka_addrs"`
	// Topic is the Kafka topic events publish to.
	Topic string `yaml:"topic"`
}

// NewAppConfiguration loads the YAML file at path when path is non-empty,
// then applies environment variable overrides and defaults.
func NewAppConfiguration(path string) (AppConfiguration, error) {
	var conf AppConfiguration
	if len(path) > 0 {
		loaded, err := LoadYAMLConfig(path)
		if err != nil {
			return conf, fmt.Errorf("error loading yaml configuration at %s: %v", path, err)
		}
		conf = loaded
	}
	applyEnvironmentOverrides(&conf)
	applyDefaults(&conf)
	return conf, nil
}

func applyEnvironmentOverrides(conf *AppConfiguration) {
	db := &conf.DatabaseConnection
	db.Driver = GetEnvOrDefault(RM_DB_DRIVER, db.Driver)
	db.Username = GetEnvOrDefault(RM_DB_USERNAME, db.Username)
	db.Password = GetEnvOrDefault(RM_DB_PASSWORD, db.Password)
	db.Protocol = GetEnvOrDefault(RM_DB_PROTOCOL, db.Protocol)
	db.Host = GetEnvOrDefault(RM_DB_HOST, db.Host)
	db.Port = GetEnvOrDefault(RM_DB_PORT, db.Port)
	db.Schema = GetEnvOrDefault(RM_DB_SCHEMA, db.Schema)
	db.Params = GetEnvOrDefault(RM_DB_CONN_PARAMS, db.Params)
	db.MaxIdleConns = GetEnvOrDefaultInt(RM_DB_MAXIDLECONNS, db.MaxIdleConns)
	db.MaxOpenConns = GetEnvOrDefaultInt(RM_DB_MAXOPENCONNS, db.MaxOpenConns)
	db.ConnectRetries = GetEnvOrDefaultInt(RM_DB_CONNECT_RETRIES, db.ConnectRetries)
	db.ConnectRetryDelay = GetEnvOrDefaultInt(RM_DB_CONNECT_RETRY_DELAY, db.ConnectRetryDelay)

	srv := &conf.ServerSettings
	srv.ListenBind = GetEnvOrDefault(RM_SERVER_BINDADDRESS, srv.ListenBind)
	srv.ListenPort = GetEnvOrDefault(RM_SERVER_PORT, srv.ListenPort)
	srv.BasePath = GetEnvOrDefault(RM_SERVER_BASEPATH, srv.BasePath)

	s3 := &conf.S3Settings
	s3.Region = GetEnvOrDefault(RM_AWS_REGION, s3.Region)
	s3.Endpoint = GetEnvOrDefault(RM_AWS_S3_ENDPOINT, s3.Endpoint)
	s3.Bucket = GetEnvOrDefault(RM_AWS_S3_BUCKET, s3.Bucket)
	s3.KeyPrefix = GetEnvOrDefault(RM_AWS_S3_KEY_PREFIX, s3.KeyPrefix)
	s3.AccessKeyID = GetEnvOrDefault(RM_AWS_ACCESS_KEY_ID, s3.AccessKeyID)
	s3.SecretAccessKey = GetEnvOrDefault(RM_AWS_SECRET_ACCESS_KEY, s3.SecretAccessKey)

	eq := &conf.EventQueue
	if addrs := GetEnvOrDefault(RM_EVENT_KAFKA_ADDRS, ""); len(addrs) > 0 {
		eq.KafkaAddrs = strings.Split(addrs, ",")
	}
	eq.Topic = GetEnvOrDefault(RM_EVENT_TOPIC, eq.Topic)

	conf.LogLevel = GetEnvOrDefault(RM_LOG_LEVEL, conf.LogLevel)
}

func applyDefaults(conf *AppConfiguration) {
	db := &conf.DatabaseConnection
	if len(db.Driver) == 0 {
		db.Driver = defaultDBDriver
	}
	if len(db.Protocol) == 0 {
		db.Protocol = defaultDBProtocol
	}
	if len(db.Host) == 0 {
		db.Host = defaultDBHost
	}
	if len(db.Port) == 0 {
		db.Port = defaultDBPort
	}
	if len(db.Schema) == 0 {
		db.Schema = defaultDBSchema
	}
	if db.ConnectRetries < 1 {
		db.ConnectRetries = defaultDBConnectRetries
	}
	if db.ConnectRetryDelay < 1 {
		db.ConnectRetryDelay = defaultDBConnectRetryDelay
	}
	srv := &conf.ServerSettings
	if len(srv.ListenBind) == 0 {
		srv.ListenBind = "0.0.0.0"
	}
	if len(srv.ListenPort) == 0 {
		srv.ListenPort = "4430"
	}
	if len(srv.BasePath) == 0 {
		srv.BasePath = "/services/report-mapper"
	}
	if len(conf.EventQueue.Topic) == 0 {
		conf.EventQueue.Topic = "report-mapper-event"
	}
	if len(conf.LogLevel) == 0 {
		conf.LogLevel = "info"
	}
}

// GetDatabaseHandle builds a database handle from the configuration.
func (conf DatabaseConfiguration) GetDatabaseHandle() (*sqlx.DB, error) {
	if conf.Driver != defaultDBDriver {
		return nil, fmt.Errorf("unsupported database driver %s", conf.Driver)
	}
	db, err := sqlx.Open(conf.Driver, conf.buildDSN())
	if err != nil {
		return nil, err
	}
	if conf.MaxIdleConns > 0 {
		db.SetMaxIdleConns(conf.MaxIdleConns)
	}
	if conf.MaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.MaxOpenConns)
	}
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func (conf DatabaseConfiguration) buildDSN() string {
	c := mysql.NewConfig()
	c.User = conf.Username
	c.Passwd = conf.Password
	c.Net = conf.Protocol
	c.Addr = conf.Host + ":" + conf.Port
	c.DBName = conf.Schema
	c.ParseTime = true
	dsn := c.FormatDSN()
	if len(conf.Params) > 0 {
		dsn = dsn + "&" + conf.Params
	}
	return dsn
}
