package config

import (
	"bufio"
	"os"
	"strings"

	"realgo/internal/shared/models"
)

// LoadConfig parses the flat two-level config.yaml. Values of the form
// ${ENV_VAR:-default} are resolved against the environment.
func LoadConfig(filename string) (*models.Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := defaults()
	var section string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.Contains(line, ":") {
			continue
		}

		if strings.HasSuffix(line, ":") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := expandEnv(strings.TrimSpace(parts[1]))

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = val
			case "port":
				cfg.Database.Port = val
			case "user":
				cfg.Database.User = val
			case "password":
				cfg.Database.Password = val
			case "database":
				cfg.Database.Database = val
			case "sslmode":
				cfg.Database.SSLMode = val
			}
		case "rabbitmq":
			switch key {
			case "host":
				cfg.RabbitMQ.Host = val
			case "port":
				cfg.RabbitMQ.Port = val
			case "user":
				cfg.RabbitMQ.User = val
			case "password":
				cfg.RabbitMQ.Password = val
			}
		case "auth":
			if key == "jwt_secret" {
				cfg.Auth.JWTSecret = val
			}
		case "service":
			switch key {
			case "port":
				cfg.Service.Port = val
			case "sql_dir":
				cfg.Service.SQLDir = val
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *models.Config {
	return &models.Config{
		Database: models.DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "realgo",
			Password: "realgo",
			Database: "realgo",
			SSLMode:  "disable",
		},
		RabbitMQ: models.RabbitMQConfig{
			Host:     "localhost",
			Port:     "5672",
			User:     "guest",
			Password: "guest",
		},
		Auth:    models.AuthConfig{JWTSecret: "dev_secret"},
		Service: models.ServiceConfig{Port: "8000", SQLDir: "sql"},
	}
}

// expandEnv resolves ${VAR} and ${VAR:-default} references.
func expandEnv(val string) string {
	if !strings.HasPrefix(val, "${") || !strings.HasSuffix(val, "}") {
		return val
	}

	inside := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
	parts := strings.SplitN(inside, ":-", 2)

	envVar := parts[0]
	defVal := ""
	if len(parts) == 2 {
		defVal = parts[1]
	}

	if v, ok := os.LookupEnv(envVar); ok {
		return v
	}
	return defVal
}
