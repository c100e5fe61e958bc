package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the dining system
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Redis    RedisConfig    `yaml:"redis"`
	Service  ServiceConfig  `yaml:"service"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// RedisConfig holds Redis connection configuration for the cart draft store
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// ServiceConfig holds the domain constants of the cart and reservation engines
type ServiceConfig struct {
	ServiceDurationMinutes int `yaml:"service_duration_minutes"`
	DeliveryFeeCents       int `yaml:"delivery_fee_cents"`
	DraftTTLMinutes        int `yaml:"draft_ttl_minutes"`
}

// ServiceDuration returns the time span a reservation occupies a table.
func (c *Config) ServiceDuration() time.Duration {
	return time.Duration(c.Service.ServiceDurationMinutes) * time.Minute
}

// DraftTTL returns how long saved cart drafts are retained.
func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.Service.DraftTTLMinutes) * time.Minute
}

// Load reads configuration from a YAML file and applies DINEHUB_*
// environment overrides on top.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{
		Database: DatabaseConfig{
			MaxConns: 25,
			MinConns: 5,
		},
		Service: ServiceConfig{
			ServiceDurationMinutes: 120,
			DraftTTLMinutes:        24 * 60,
		},
	}
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.applyEnvOverrides()

	return config, nil
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "database":
		return c.setDatabaseValue(key, value)
	case "rabbitmq":
		return c.setRabbitMQValue(key, value)
	case "redis":
		return c.setRedisValue(key, value)
	case "service":
		return c.setServiceValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setDatabaseValue sets database configuration values
func (c *Config) setDatabaseValue(key, value string) error {
	switch key {
	case "host":
		c.Database.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Database.Port = port
	case "user":
		c.Database.User = value
	case "password":
		c.Database.Password = value
	case "database":
		c.Database.Database = value
	case "max_conns":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid max_conns value: %q", value)
		}
		c.Database.MaxConns = n
	case "min_conns":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid min_conns value: %q", value)
		}
		c.Database.MinConns = n
	default:
		return fmt.Errorf("unknown database key: %s", key)
	}
	return nil
}

// setRabbitMQValue sets RabbitMQ configuration values
func (c *Config) setRabbitMQValue(key, value string) error {
	switch key {
	case "host":
		c.RabbitMQ.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.RabbitMQ.Port = port
	case "user":
		c.RabbitMQ.User = value
	case "password":
		c.RabbitMQ.Password = value
	default:
		return fmt.Errorf("unknown rabbitmq key: %s", key)
	}
	return nil
}

// setRedisValue sets Redis configuration values
func (c *Config) setRedisValue(key, value string) error {
	switch key {
	case "addr":
		c.Redis.Addr = value
	default:
		return fmt.Errorf("unknown redis key: %s", key)
	}
	return nil
}

// setServiceValue sets domain constant values
func (c *Config) setServiceValue(key, value string) error {
	switch key {
	case "service_duration_minutes":
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 1 {
			return fmt.Errorf("invalid service_duration_minutes value: %q", value)
		}
		c.Service.ServiceDurationMinutes = minutes
	case "delivery_fee_cents":
		fee, err := strconv.Atoi(value)
		if err != nil || fee < 0 {
			return fmt.Errorf("invalid delivery_fee_cents value: %q", value)
		}
		c.Service.DeliveryFeeCents = fee
	case "draft_ttl_minutes":
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 1 {
			return fmt.Errorf("invalid draft_ttl_minutes value: %q", value)
		}
		c.Service.DraftTTLMinutes = minutes
	default:
		return fmt.Errorf("unknown service key: %s", key)
	}
	return nil
}

// applyEnvOverrides lets deployment environments replace file values
// without editing the config file. Applied after the file so .env wins.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DINEHUB_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DINEHUB_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DINEHUB_RABBITMQ_HOST"); v != "" {
		c.RabbitMQ.Host = v
	}
	if v := os.Getenv("DINEHUB_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
