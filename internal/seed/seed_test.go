package seed

import "testing"

func TestCalculate(t *testing.T) {
	value := int64(42)

	tests := []struct {
		name    string
		config  Config
		want    uint64
		wantErr bool
	}{
		{name: "manual", config: Config{Mode: ModeManual, Value: &value}, want: 42},
		{name: "manual without value", config: Config{Mode: ModeManual}, wantErr: true},
		{name: "text", config: Config{Mode: ModeText, Text: "Acme Coffee"}, want: TextSeed("acme coffee")},
		{name: "text without text", config: Config{Mode: ModeText, Text: "  "}, wantErr: true},
		{name: "unknown", config: Config{Mode: "content"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Calculate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Calculate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateRandom(t *testing.T) {
	if _, err := Calculate(Config{Mode: ModeRandom}); err != nil {
		t.Errorf("Calculate(random) error = %v", err)
	}
	if _, err := Calculate(Config{}); err != nil {
		t.Errorf("Calculate(empty mode) error = %v", err)
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a := NewRand(7)
	b := NewRand(7)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
