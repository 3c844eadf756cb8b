package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAppConfigurationDefaults(t *testing.T) {
	conf, err := NewAppConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.DatabaseConnection.Driver != "mysql" {
		t.Errorf("expected mysql driver default, got %s", conf.DatabaseConnection.Driver)
	}
	if conf.ServerSettings.ListenPort != "4430" {
		t.Errorf("expected default port, got %s", conf.ServerSettings.ListenPort)
	}
	if conf.EventQueue.Topic != "report-mapper-event" {
		t.Errorf("expected default topic, got %s", conf.EventQueue.Topic)
	}
	if conf.DatabaseConnection.ConnectRetries != 20 {
		t.Errorf("expected default connect retries, got %d", conf.DatabaseConnection.ConnectRetries)
	}
	if conf.DatabaseConnection.ConnectRetryDelay != 3 {
		t.Errorf("expected default connect retry delay, got %d", conf.DatabaseConnection.ConnectRetryDelay)
	}
}

func TestNewAppConfigurationFromYAML(t *testing.T) {
	contents := `
database:
  host: db.internal
  port: "3307"
  schema: reports
server:
  port: "8080"
event_queue:
  kafka_addrs:
    - broker1:9092
    - broker2:9092
  topic: reports-events
log_level: debug
`
	path := filepath.Join(t.TempDir(), "report-mapper.yml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := NewAppConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.DatabaseConnection.Host != "db.internal" {
		t.Errorf("expected host from yaml, got %s", conf.DatabaseConnection.Host)
	}
	if conf.DatabaseConnection.Port != "3307" {
		t.Errorf("expected port from yaml, got %s", conf.DatabaseConnection.Port)
	}
	if conf.ServerSettings.ListenPort != "8080" {
		t.Errorf("expected server port from yaml, got %s", conf.ServerSettings.ListenPort)
	}
	if len(conf.EventQueue.KafkaAddrs) != 2 {
		t.Errorf("expected two brokers, got %v", conf.EventQueue.KafkaAddrs)
	}
	if conf.LogLevel != "debug" {
		t.Errorf("expected debug level, got %s", conf.LogLevel)
	}
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	t.Setenv(RM_DB_HOST, "override.internal")
	t.Setenv(RM_SERVER_PORT, "9443")
	t.Setenv(RM_DB_CONNECT_RETRIES, "1")
	conf, err := NewAppConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.DatabaseConnection.Host != "override.internal" {
		t.Errorf("expected env override for db host, got %s", conf.DatabaseConnection.Host)
	}
	if conf.ServerSettings.ListenPort != "9443" {
		t.Errorf("expected env override for port, got %s", conf.ServerSettings.ListenPort)
	}
	if conf.DatabaseConnection.ConnectRetries != 1 {
		t.Errorf("expected env override for connect retries, got %d", conf.DatabaseConnection.ConnectRetries)
	}
}

func TestBuildDSN(t *testing.T) {
	conf := DatabaseConfiguration{
		Driver:   "mysql",
		Username: "rm",
		Password: "secret",
		Protocol: "tcp",
		Host:     "db.internal",
		Port:     "3306",
		Schema:   "reportmapper",
	}
	dsn := conf.buildDSN()
	expected := "rm:secret@tcp(db.internal:3306)/reportmapper?parseTime=true"
	if dsn != expected {
		t.Errorf("unexpected dsn: %s", dsn)
	}
}
