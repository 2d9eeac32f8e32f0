// Package security validates user-supplied URLs, names and paths before swatch
// fetches or writes anything with them.
package security

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strings"
)

// URLPolicy controls ValidateHTTPURL.
type URLPolicy struct {
	// AllowHTTP permits plain http:// URLs.
	AllowHTTP bool
	// AllowPrivate permits loopback, link-local and private hosts.
	AllowPrivate bool
}

// ValidateHTTPURL checks a remote palette URL. By default only HTTPS URLs to
// public hosts are accepted.
func ValidateHTTPURL(urlStr string, policy URLPolicy) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "https":
	case "http":
		if !policy.AllowHTTP {
			return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
		}
	default:
		return fmt.Errorf("unsupported URL scheme: %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	if !policy.AllowPrivate && isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateName checks a palette or preset name used as a display key.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name must not be empty")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("name is too long (%d characters, max 100)", len(trimmed))
	}
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("name contains control characters")
		}
	}
	return nil
}

// ValidateStorePath checks that a collection file stays inside the data directory.
func ValidateStorePath(path, baseDir string) error {
	if path == "" {
		return fmt.Errorf("empty store path")
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("invalid store path: %w", err)
	}
	absBase, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return fmt.Errorf("invalid data directory: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("store path must be within data directory (attempted path traversal)")
	}
	return nil
}

// ValidateOutputPath checks an export file name relative to an output directory.
func ValidateOutputPath(name, baseDir string) error {
	if name == "" {
		return fmt.Errorf("empty output file name")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute output file names are not allowed")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("output file name contains directory traversal (..) - not allowed")
	}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	final := filepath.Join(base, name)
	if !strings.HasPrefix(final, base+string(filepath.Separator)) {
		return fmt.Errorf("output file would escape output directory")
	}
	return nil
}

func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}
