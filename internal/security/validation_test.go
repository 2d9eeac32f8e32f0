package security

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		policy  URLPolicy
		wantErr bool
	}{
		{"https public", "https://example.com/palette.json", URLPolicy{}, false},
		{"empty", "", URLPolicy{}, true},
		{"http rejected", "http://example.com/p.json", URLPolicy{}, true},
		{"http allowed", "http://example.com/p.json", URLPolicy{AllowHTTP: true}, false},
		{"ftp", "ftp://example.com/p.json", URLPolicy{AllowHTTP: true}, true},
		{"no host", "https:///p.json", URLPolicy{}, true},
		{"localhost", "https://localhost/p.json", URLPolicy{}, true},
		{"loopback", "https://127.0.0.1:8443/p.json", URLPolicy{}, true},
		{"private v4", "https://192.168.1.4/p.json", URLPolicy{}, true},
		{"private 172", "https://172.20.0.1/p.json", URLPolicy{}, true},
		{"metadata", "https://169.254.169.254/latest", URLPolicy{}, true},
		{"ipv6 loopback", "https://[::1]/p.json", URLPolicy{}, true},
		{"ipv6 ula", "https://[fd12::1]/p.json", URLPolicy{}, true},
		{"private allowed", "http://127.0.0.1:8080/p.json", URLPolicy{AllowHTTP: true, AllowPrivate: true}, false},
		{"public ip", "https://8.8.8.8/p.json", URLPolicy{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url, tt.policy)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"plain", "Summer site", false},
		{"unicode", "Café palette", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control", "bad\x00name", true},
		{"too long", strings.Repeat("a", 101), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateName(tt.in); (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStorePath(t *testing.T) {
	base := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"inside", filepath.Join(base, "savedPalettes.json"), false},
		{"nested", filepath.Join(base, "sub", "x.json"), false},
		{"base itself", base, true},
		{"traversal", filepath.Join(base, "..", "escape.json"), true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStorePath(tt.path, base); (err != nil) != tt.wantErr {
				t.Errorf("ValidateStorePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	base := t.TempDir()
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"simple", "palette.css", false},
		{"subdir", "themes/palette.css", false},
		{"dotdot", "../palette.css", true},
		{"absolute", "/etc/passwd", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateOutputPath(tt.file, base); (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPathRelativeBase(t *testing.T) {
	for _, base := range []string{".", "out", "./themes/"} {
		if err := ValidateOutputPath("swatch.css", base); err != nil {
			t.Errorf("ValidateOutputPath(swatch.css, %q) error = %v", base, err)
		}
	}
	if err := ValidateOutputPath("a/../../x.css", "."); err == nil {
		t.Error("ValidateOutputPath() should reject traversal from a relative base")
	}
}
