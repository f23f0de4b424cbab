package config

import (
	"testing"
	"time"
)

func TestLookupEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"unset", "", false, 30},
		{"valid", "14", true, 14},
		{"malformed", "two weeks", true, 30},
		{"empty", "", true, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("EXPIRY_UPCOMING_DAYS", tt.value)
			}
			if got := LookupEnvInt("EXPIRY_UPCOMING_DAYS", 30); got != tt.want {
				t.Errorf("LookupEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLookupEnvDuration(t *testing.T) {
	t.Setenv("SWEEP_LOCK_TTL", "5m")
	if got := LookupEnvDuration("SWEEP_LOCK_TTL", time.Minute); got != 5*time.Minute {
		t.Errorf("LookupEnvDuration() = %v, want 5m", got)
	}

	t.Setenv("SWEEP_LOCK_TTL", "soon")
	if got := LookupEnvDuration("SWEEP_LOCK_TTL", time.Minute); got != time.Minute {
		t.Errorf("LookupEnvDuration() = %v, want fallback 1m", got)
	}
}

func TestNormalizeThresholds(t *testing.T) {
	c := &Config{UpcomingThresholdDays: -3, FinalThresholdDays: 0}
	c.normalize()

	if c.UpcomingThresholdDays != DefaultUpcomingThresholdDays {
		t.Errorf("UpcomingThresholdDays = %d, want %d", c.UpcomingThresholdDays, DefaultUpcomingThresholdDays)
	}
	if c.FinalThresholdDays != DefaultFinalThresholdDays {
		t.Errorf("FinalThresholdDays = %d, want %d", c.FinalThresholdDays, DefaultFinalThresholdDays)
	}
}
