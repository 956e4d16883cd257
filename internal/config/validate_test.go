package config

import "testing"

func TestValidate_ValidToleranceModes(t *testing.T) {
	for _, mode := range []string{"", "relative", "absolute", "ulp"} {
		t.Run(mode, func(t *testing.T) {
			cfg := &Config{ToleranceMode: mode}
			if _, err := Validate(cfg); err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestValidate_InvalidToleranceMode(t *testing.T) {
	cfg := &Config{ToleranceMode: "logarithmic"}
	if _, err := Validate(cfg); err == nil {
		t.Fatal("Validate() expected error for invalid tolerance_mode, got nil")
	}
}

func TestValidate_NegativePrecision(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"negative precision32", &Config{Precision32: -1}},
		{"negative precision64", &Config{Precision64: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Validate(tt.cfg); err == nil {
				t.Fatalf("Validate() expected error for %s, got nil", tt.name)
			}
		})
	}
}
