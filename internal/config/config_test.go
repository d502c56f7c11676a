package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()

	if cfg.Port != def.Port || cfg.MaxPrincipal != def.MaxPrincipal || cfg.MaxDurationDays != def.MaxDurationDays {
		t.Errorf("defaults differ: got %+v", cfg)
	}
	if cfg.FundsCacheTTL != time.Hour || cfg.FundsFetchTimeout != 10*time.Second {
		t.Errorf("unexpected durations: ttl=%v timeout=%v", cfg.FundsCacheTTL, cfg.FundsFetchTimeout)
	}
	if cfg.DepositDefaults != def.DepositDefaults || cfg.RepoDefaults != def.RepoDefaults {
		t.Errorf("unexpected rate defaults: deposit=%+v repo=%+v", cfg.DepositDefaults, cfg.RepoDefaults)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_PRINCIPAL", "5000000")
	t.Setenv("FUNDS_CACHE_TTL", "15m")
	t.Setenv("REPO_COMMISSION_RATE", "2.25")
	t.Setenv("MAX_DURATION_DAYS", "not-a-number")
	t.Setenv("FUNDS_FETCH_TIMEOUT", "-5s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.MaxPrincipal != 5e6 {
		t.Errorf("MaxPrincipal = %v, want 5e6", cfg.MaxPrincipal)
	}
	if cfg.FundsCacheTTL != 15*time.Minute {
		t.Errorf("FundsCacheTTL = %v, want 15m", cfg.FundsCacheTTL)
	}
	if cfg.RepoDefaults.AnnualCommissionRatePercent != 2.25 {
		t.Errorf("repo commission = %v, want 2.25", cfg.RepoDefaults.AnnualCommissionRatePercent)
	}
	if cfg.MaxDurationDays != 3650 {
		t.Errorf("malformed value should fall back to default, got %d", cfg.MaxDurationDays)
	}
	if cfg.FundsFetchTimeout != 10*time.Second {
		t.Errorf("negative duration should fall back to default, got %v", cfg.FundsFetchTimeout)
	}
}

func TestLoadConfigRejectsNegativeRates(t *testing.T) {
	t.Setenv("DEPOSIT_INTEREST_RATE", "-1")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for negative default deposit rate")
	}
}
