package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables
const (
	RM_AWS_ACCESS_KEY_ID      = "RM_AWS_ACCESS_KEY_ID"
	RM_AWS_REGION             = "RM_AWS_REGION"
	RM_AWS_S3_BUCKET          = "RM_AWS_S3_BUCKET"
	RM_AWS_S3_ENDPOINT        = "RM_AWS_S3_ENDPOINT"
	RM_AWS_S3_KEY_PREFIX      = "RM_AWS_S3_KEY_PREFIX"
	RM_AWS_SECRET_ACCESS_KEY  = "RM_AWS_SECRET_ACCESS_KEY"
	RM_DB_CONNECT_RETRIES     = "RM_DB_CONNECT_RETRIES"
	RM_DB_CONNECT_RETRY_DELAY = "RM_DB_CONNECT_RETRY_DELAY"
	RM_DB_CONN_PARAMS         = "RM_DB_CONN_PARAMS"
	RM_DB_DRIVER              = "RM_DB_DRIVER"
	RM_DB_HOST                = "RM_DB_HOST"
	RM_DB_MAXIDLECONNS        = "RM_DB_MAXIDLECONNS"
	RM_DB_MAXOPENCONNS        = "RM_DB_MAXOPENCONNS"
	RM_DB_PASSWORD            = "RM_DB_PASSWORD"
	RM_DB_PORT                = "RM_DB_PORT"
	RM_DB_PROTOCOL            = "RM_DB_PROTOCOL"
	RM_DB_SCHEMA              = "RM_DB_SCHEMA"
	RM_DB_USERNAME            = "RM_DB_USERNAME"
	RM_EVENT_KAFKA_ADDRS      = "RM_EVENT_KAFKA_ADDRS"
	RM_EVENT_TOPIC            = "RM_EVENT_TOPIC"
	RM_LOG_LEVEL              = "RM_LOG_LEVEL"
	RM_SERVER_BASEPATH        = "RM_SERVER_BASEPATH"
	RM_SERVER_BINDADDRESS     = "RM_SERVER_BINDADDRESS"
	RM_SERVER_PORT            = "RM_SERVER_PORT"
)

var envVars = []string{
	RM_AWS_ACCESS_KEY_ID,
	RM_AWS_REGION,
	RM_AWS_S3_BUCKET,
	RM_AWS_S3_ENDPOINT,
	RM_AWS_S3_KEY_PREFIX,
	RM_AWS_SECRET_ACCESS_KEY,
	RM_DB_CONNECT_RETRIES,
	RM_DB_CONNECT_RETRY_DELAY,
	RM_DB_CONN_PARAMS,
	RM_DB_DRIVER,
	RM_DB_HOST,
	RM_DB_MAXIDLECONNS,
	RM_DB_MAXOPENCONNS,
	RM_DB_PASSWORD,
	RM_DB_PORT,
	RM_DB_PROTOCOL,
	RM_DB_SCHEMA,
	RM_DB_USERNAME,
	RM_EVENT_KAFKA_ADDRS,
	RM_EVENT_TOPIC,
	RM_LOG_LEVEL,
	RM_SERVER_BASEPATH,
	RM_SERVER_BINDADDRESS,
	RM_SERVER_PORT,
}

var hiddenEnvVars = map[string]bool{
	RM_AWS_SECRET_ACCESS_KEY: true,
	RM_DB_PASSWORD:           true,
}

// PrintEnvironment prints the recognized environment variables and their
// current values. Secrets are masked.
func PrintEnvironment() {
	fmt.Println("report-mapper environment variables:")
	for _, name := range envVars {
		value := os.Getenv(name)
		if hiddenEnvVars[name] && len(value) > 0 {
			value = "********"
		}
		fmt.Printf("%s=%s\n", name, value)
	}
}

// GetEnvOrDefault returns the value of an environment variable, or a default
// when the variable is unset or empty.
func GetEnvOrDefault(name, defaultValue string) string {
	envVal := os.Getenv(name)
	if len(envVal) == 0 {
		return defaultValue
	}
	return envVal
}

// GetEnvOrDefaultInt returns the integer value of an environment variable,
// or a default when unset or unparsable.
func GetEnvOrDefaultInt(name string, defaultValue int) int {
	envVal := os.Getenv(name)
	if len(envVal) == 0 {
		return defaultValue
	}
	i, err := strconv.Atoi(envVal)
	if err != nil {
		return defaultValue
	}
	return i
}
