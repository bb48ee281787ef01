package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ordering system
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Loyalty  LoyaltyConfig  `yaml:"loyalty"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// PricingConfig holds the tax and delivery fee policy applied at checkout
type PricingConfig struct {
	TaxRate     float64 `yaml:"tax_rate"`
	DeliveryFee float64 `yaml:"delivery_fee"`
}

// LoyaltyConfig holds the loyalty program policy
type LoyaltyConfig struct {
	StartingBalance int `yaml:"starting_balance"`
}

// Load reads configuration from a YAML file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults fills in policy values the file may omit
func (c *Config) applyDefaults() {
	if c.Pricing.TaxRate == 0 {
		c.Pricing.TaxRate = 0.0825
	}
	if c.Pricing.DeliveryFee == 0 {
		c.Pricing.DeliveryFee = 3.99
	}
}

func (c *Config) validate() error {
	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate >= 1 {
		return fmt.Errorf("pricing.tax_rate must be in [0, 1), got %v", c.Pricing.TaxRate)
	}
	if c.Pricing.DeliveryFee < 0 {
		return fmt.Errorf("pricing.delivery_fee must not be negative, got %v", c.Pricing.DeliveryFee)
	}
	if c.Loyalty.StartingBalance < 0 {
		return fmt.Errorf("loyalty.starting_balance must not be negative, got %d", c.Loyalty.StartingBalance)
	}
	return nil
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
