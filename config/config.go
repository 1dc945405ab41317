// Package config holds the server settings and the command line flags that fill them.
package config

import (
	"errors"
	"time"

	"github.com/urfave/cli/v2"
)

// Config is everything the server needs at start-up
type Config struct {
	Port        string
	CORSOrigins []string

	AWSRegion        string
	DynamoDBEndpoint string
	S3Endpoint       string
	S3Bucket         string
	S3PublicBaseURL  string
	TablePrefix      string

	JWTSecret  string
	SessionTTL time.Duration

	StreamAPIKey    string
	StreamAPISecret string
	StreamTokenTTL  time.Duration

	AMQPURL      string
	AMQPExchange string

	LogLevel   string
	LogConsole bool
}

// Flags returns the serve command flags, each bound to its environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "port", Value: "8080", Usage: "HTTP listen port", EnvVars: []string{"PORT"}},
		&cli.StringSliceFlag{Name: "cors-origins", Value: cli.NewStringSlice("*"), Usage: "allowed CORS origins", EnvVars: []string{"CORS_ORIGINS"}},
		&cli.StringFlag{Name: "aws-region", Usage: "AWS region", EnvVars: []string{"AWS_REGION"}},
		&cli.StringFlag{Name: "dynamodb-endpoint", Usage: "DynamoDB endpoint override (local development)", EnvVars: []string{"DYNAMODB_ENDPOINT"}},
		&cli.StringFlag{Name: "s3-endpoint", Usage: "S3 endpoint override (local development)", EnvVars: []string{"S3_ENDPOINT"}},
		&cli.StringFlag{Name: "s3-bucket", Usage: "bucket for profile images", EnvVars: []string{"S3_BUCKET_NAME"}},
		&cli.StringFlag{Name: "s3-public-base-url", Usage: "base URL used to build image download URLs", EnvVars: []string{"S3_PUBLIC_BASE_URL"}},
		&cli.StringFlag{Name: "table-prefix", Usage: "prefix added to every DynamoDB table name", EnvVars: []string{"TABLE_PREFIX"}},
		&cli.StringFlag{Name: "jwt-secret", Usage: "HMAC secret for session tokens", EnvVars: []string{"JWT_SECRET"}},
		&cli.DurationFlag{Name: "session-ttl", Value: 7 * 24 * time.Hour, Usage: "session token lifetime", EnvVars: []string{"SESSION_TTL"}},
		&cli.StringFlag{Name: "stream-api-key", Usage: "Stream chat API key", EnvVars: []string{"STREAM_API_KEY"}},
		&cli.StringFlag{Name: "stream-api-secret", Usage: "Stream chat API secret", EnvVars: []string{"STREAM_API_SECRET"}},
		&cli.DurationFlag{Name: "stream-token-ttl", Value: 24 * time.Hour, Usage: "chat token lifetime", EnvVars: []string{"STREAM_TOKEN_TTL"}},
		&cli.StringFlag{Name: "amqp-url", Usage: "RabbitMQ URL, empty disables event publishing", EnvVars: []string{"AMQP_URL"}},
		&cli.StringFlag{Name: "amqp-exchange", Value: "lovematch.events", Usage: "topic exchange for domain events", EnvVars: []string{"AMQP_EXCHANGE"}},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "trace, debug, info, warn, error", EnvVars: []string{"LOG_LEVEL"}},
		&cli.BoolFlag{Name: "log-console", Usage: "human readable log output", EnvVars: []string{"LOG_CONSOLE"}},
	}
}

// FromContext reads the flag values of a parsed command.
func FromContext(c *cli.Context) Config {
	return Config{
		Port:             c.String("port"),
		CORSOrigins:      c.StringSlice("cors-origins"),
		AWSRegion:        c.String("aws-region"),
		DynamoDBEndpoint: c.String("dynamodb-endpoint"),
		S3Endpoint:       c.String("s3-endpoint"),
		S3Bucket:         c.String("s3-bucket"),
		S3PublicBaseURL:  c.String("s3-public-base-url"),
		TablePrefix:      c.String("table-prefix"),
		JWTSecret:        c.String("jwt-secret"),
		SessionTTL:       c.Duration("session-ttl"),
		StreamAPIKey:     c.String("stream-api-key"),
		StreamAPISecret:  c.String("stream-api-secret"),
		StreamTokenTTL:   c.Duration("stream-token-ttl"),
		AMQPURL:          c.String("amqp-url"),
		AMQPExchange:     c.String("amqp-exchange"),
		LogLevel:         c.String("log-level"),
		LogConsole:       c.Bool("log-console"),
	}
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.StreamTokenTTL < 0 {
		return errors.New("stream token ttl must not be negative")
	}
	return nil
}

// StreamConfigured reports whether both Stream credentials are present.
func (c Config) StreamConfigured() bool {
	return c.StreamAPIKey != "" && c.StreamAPISecret != ""
}
