package models

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type AuthConfig struct {
	JWTSecret string
}

type ServiceConfig struct {
	Port   string
	SQLDir string
}

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Service  ServiceConfig
}
