package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Log          LogConfig
	Order        OrderConfig
	Notification NotificationConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type OrderConfig struct {
	// PaymentWindow is how long a new order may sit unpaid before it is
	// expired on the next read.
	PaymentWindow time.Duration
}

type NotificationConfig struct {
	GatewayURL   string
	GatewayToken string
	SendTimeout  time.Duration
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "playvault")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "playvault")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ORDER_PAYMENT_WINDOW", "30m")
	viper.SetDefault("NOTIFY_GATEWAY_URL", "")
	viper.SetDefault("NOTIFY_GATEWAY_TOKEN", "")
	viper.SetDefault("NOTIFY_SEND_TIMEOUT", "10s")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	paymentWindow, err := time.ParseDuration(viper.GetString("ORDER_PAYMENT_WINDOW"))
	if err != nil {
		return nil, err
	}

	sendTimeout, err := time.ParseDuration(viper.GetString("NOTIFY_SEND_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Order: OrderConfig{
			PaymentWindow: paymentWindow,
		},
		Notification: NotificationConfig{
			GatewayURL:   viper.GetString("NOTIFY_GATEWAY_URL"),
			GatewayToken: viper.GetString("NOTIFY_GATEWAY_TOKEN"),
			SendTimeout:  sendTimeout,
		},
	}

	return cfg, nil
}
