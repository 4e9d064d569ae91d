package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string

	OperatorWorkers    int
	OperatorMaxRetries int

	// DataBackend is BackendPostgres or BackendMemory.
	DataBackend string

	// AMQPURL is optional; ledger events are not published when it is empty.
	AMQPURL      string
	AMQPExchange string

	LogLevel logrus.Level
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:    "localhost",
		PostgresPort:       "5433",
		PostgresDB:         "postgres",
		PostgresUsername:   "postgres",
		PostgresPassword:   "testpassword",
		HTTPPort:           "9446",
		OperatorWorkers:    4,
		OperatorMaxRetries: 3,
		DataBackend:        BackendPostgres,
		AMQPExchange:       "ledger",
		LogLevel:           logrus.InfoLevel,
	}

	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.HTTPPort, "HTTP_PORT")
	setString(&env.DataBackend, "DATA_BACKEND")
	setString(&env.AMQPURL, "AMQP_URL")
	setString(&env.AMQPExchange, "AMQP_EXCHANGE")

	if err := setInt(&env.OperatorWorkers, "OPERATOR_WORKERS"); err != nil {
		return nil, err
	}
	if err := setInt(&env.OperatorMaxRetries, "OPERATOR_MAX_RETRIES"); err != nil {
		return nil, err
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); len(envLogLevel) != 0 {
		level, err := logrus.ParseLevel(envLogLevel)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	return &env, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid HTTP port %q", c.HTTPPort))
	}
	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("operator workers must be at least 1, got %d", c.OperatorWorkers))
	}
	if c.OperatorMaxRetries < 0 {
		problems = append(problems, fmt.Sprintf("operator max retries must not be negative, got %d", c.OperatorMaxRetries))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.PostgresAddress == "" || c.PostgresDB == "" || c.PostgresUsername == "" {
			problems = append(problems, "postgres address, database and username are required")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be %q or %q", c.DataBackend, BackendPostgres, BackendMemory))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange is required when AMQP URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

func setString(field *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*field = value
	}
}

func setInt(field *int, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*field = parsed
	return nil
}
