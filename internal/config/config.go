package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port     int
	GinMode  string
	Env      string
	LogLevel string

	MinPrincipal       float64
	MaxPrincipal       float64
	MaxDurationDays    int
	MaxInterestRate    float64
	MaxCommissionRate  float64
	MaxWithholdingRate float64
	SimulationDayLimit int

	FundsCSVURL       string
	FundsCSVPath      string
	FundsFetchTimeout time.Duration
	FundsCacheTTL     time.Duration

	DepositDefaults calculations.RateModel
	RepoDefaults    calculations.RateModel

	OTELEndpoint    string
	OTELServiceName string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvInt("PORT", 8000),
		GinMode:  getEnvString("GIN_MODE", "release"),
		Env:      getEnvString("ENV", "production"),
		LogLevel: getEnvString("LOG_LEVEL", "INFO"),

		MinPrincipal:       getEnvFloat("MIN_PRINCIPAL", 1),
		MaxPrincipal:       getEnvFloat("MAX_PRINCIPAL", 1e7),
		MaxDurationDays:    getEnvInt("MAX_DURATION_DAYS", 3650),
		MaxInterestRate:    getEnvFloat("MAX_INTEREST_RATE", calculations.AdvisoryMaxInterestPercent),
		MaxCommissionRate:  getEnvFloat("MAX_COMMISSION_RATE", calculations.AdvisoryMaxCommissionPercent),
		MaxWithholdingRate: getEnvFloat("MAX_WITHHOLDING_RATE", calculations.AdvisoryMaxWithholdingPercent),
		SimulationDayLimit: getEnvInt("SIMULATION_DAY_LIMIT", calculations.SimulationDayLimit),

		FundsCSVURL:       getEnvString("FUNDS_CSV_URL", ""),
		FundsCSVPath:      getEnvString("FUNDS_CSV_PATH", "funds.csv"),
		FundsFetchTimeout: getEnvDuration("FUNDS_FETCH_TIMEOUT", 10*time.Second),
		FundsCacheTTL:     getEnvDuration("FUNDS_CACHE_TTL", time.Hour),

		DepositDefaults: calculations.RateModel{
			AnnualInterestRatePercent:   getEnvFloat("DEPOSIT_INTEREST_RATE", 45.5),
			AnnualCommissionRatePercent: getEnvFloat("DEPOSIT_COMMISSION_RATE", 0),
			WithholdingTaxRatePercent:   getEnvFloat("DEPOSIT_WITHHOLDING_RATE", 15),
		},
		RepoDefaults: calculations.RateModel{
			AnnualInterestRatePercent:   getEnvFloat("REPO_INTEREST_RATE", 44),
			AnnualCommissionRatePercent: getEnvFloat("REPO_COMMISSION_RATE", 1.5),
			WithholdingTaxRatePercent:   getEnvFloat("REPO_WITHHOLDING_RATE", 15),
		},

		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "deposit-fund-compare"),
	}

	if err := cfg.DepositDefaults.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.RepoDefaults.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию без чтения окружения
func Default() *Config {
	return &Config{
		Port:               8000,
		GinMode:            "release",
		Env:                "production",
		LogLevel:           "INFO",
		MinPrincipal:       1,
		MaxPrincipal:       1e7,
		MaxDurationDays:    3650,
		MaxInterestRate:    calculations.AdvisoryMaxInterestPercent,
		MaxCommissionRate:  calculations.AdvisoryMaxCommissionPercent,
		MaxWithholdingRate: calculations.AdvisoryMaxWithholdingPercent,
		SimulationDayLimit: calculations.SimulationDayLimit,
		FundsCSVPath:       "funds.csv",
		FundsFetchTimeout:  10 * time.Second,
		FundsCacheTTL:      time.Hour,
		DepositDefaults:    calculations.RateModel{AnnualInterestRatePercent: 45.5, WithholdingTaxRatePercent: 15},
		RepoDefaults:       calculations.RateModel{AnnualInterestRatePercent: 44, AnnualCommissionRatePercent: 1.5, WithholdingTaxRatePercent: 15},
		OTELServiceName:    "deposit-fund-compare",
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}
