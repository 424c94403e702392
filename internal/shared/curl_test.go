package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name        string
		curlCmd     string
		wantHeaders map[string]string
		wantCookie  string
		wantErr     bool
	}{
		{
			name:        "single header with single quotes",
			curlCmd:     `curl -H 'Authorization: Bearer token123' https://api.example.com`,
			wantHeaders: map[string]string{"Authorization": "Bearer token123"},
		},
		{
			name:        "single header with double quotes",
			curlCmd:     `curl -H "Authorization: Bearer token123" https://api.example.com`,
			wantHeaders: map[string]string{"Authorization": "Bearer token123"},
		},
		{
			name:    "multiple headers",
			curlCmd: `curl -H 'Content-Type: application/json' -H 'Authorization: Bearer token' https://api.example.com`,
			wantHeaders: map[string]string{
				"Content-Type":  "application/json",
				"Authorization": "Bearer token",
			},
		},
		{
			name:        "cookie in -b flag",
			curlCmd:     `curl -b 'accessToken=abc123' https://api.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "accessToken=abc123",
		},
		{
			name:        "cookie in -H header is excluded from headers",
			curlCmd:     `curl -H 'Cookie: accessToken=abc; refreshToken=xyz' -H 'Accept: */*' https://api.example.com`,
			wantHeaders: map[string]string{"Accept": "*/*"},
			wantCookie:  "accessToken=abc; refreshToken=xyz",
		},
		{
			name: "multiline curl with backslashes",
			curlCmd: `curl 'https://api.example.com/api/v1/events/' \
  -H 'accept: application/json' \
  -H 'authorization: Bearer eyJhbGciOi' \
  -b 'accessToken=eyJhbGciOi; refreshToken=r1'`,
			wantHeaders: map[string]string{
				"accept":        "application/json",
				"authorization": "Bearer eyJhbGciOi",
			},
			wantCookie: "accessToken=eyJhbGciOi; refreshToken=r1",
		},
		{
			name:        "-b cookie takes precedence over -H cookie",
			curlCmd:     `curl -H 'Cookie: old=value' -b 'new=value' https://api.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "new=value",
		},
		{
			name:    "no headers or cookies",
			curlCmd: `curl https://api.example.com`,
			wantErr: true,
		},
		{
			name:    "empty command",
			curlCmd: "",
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCurlCommand(tc.curlCmd)

			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCurlCommand() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}

			if len(result.Headers) != len(tc.wantHeaders) {
				t.Errorf("headers count = %v, want %v (%v)", len(result.Headers), len(tc.wantHeaders), result.Headers)
			}
			for key, want := range tc.wantHeaders {
				if got := result.Headers[key]; got != want {
					t.Errorf("header[%s] = %v, want %v", key, got, want)
				}
			}
			if result.Cookie != tc.wantCookie {
				t.Errorf("cookie = %v, want %v", result.Cookie, tc.wantCookie)
			}
		})
	}
}

func TestCurlHeaders_SessionTokens(t *testing.T) {
	t.Run("tokens from cookies", func(t *testing.T) {
		h := &CurlHeaders{Cookie: "theme=dark; accessToken=acc; refreshToken=ref"}
		access, refresh := h.SessionTokens()
		if access != "acc" || refresh != "ref" {
			t.Errorf("got (%q, %q), want (acc, ref)", access, refresh)
		}
	})

	t.Run("access token falls back to bearer header", func(t *testing.T) {
		h := &CurlHeaders{
			Headers: map[string]string{"authorization": "Bearer from-header"},
			Cookie:  "refreshToken=ref",
		}
		access, refresh := h.SessionTokens()
		if access != "from-header" || refresh != "ref" {
			t.Errorf("got (%q, %q), want (from-header, ref)", access, refresh)
		}
	})

	t.Run("non-bearer authorization is ignored", func(t *testing.T) {
		h := &CurlHeaders{Headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}}
		if got := h.BearerToken(); got != "" {
			t.Errorf("expected empty bearer token, got %q", got)
		}
	})

	t.Run("missing cookie", func(t *testing.T) {
		h := &CurlHeaders{}
		if got := h.CookieValue(AccessTokenCookie); got != "" {
			t.Errorf("expected empty cookie value, got %q", got)
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("successful file parse", func(t *testing.T) {
		curlFile := filepath.Join(t.TempDir(), "curl.sh")

		curlCmd := `curl -H 'Authorization: Bearer token123' -b 'refreshToken=r' https://api.example.com`
		if err := os.WriteFile(curlFile, []byte(curlCmd), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		result, err := ParseCurlFile(curlFile)
		if err != nil {
			t.Fatalf("ParseCurlFile() error = %v", err)
		}

		access, refresh := result.SessionTokens()
		if access != "token123" || refresh != "r" {
			t.Errorf("got (%q, %q), want (token123, r)", access, refresh)
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/file.sh"); err == nil {
			t.Error("expected error for nonexistent file")
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	t.Run("rejects non-http URL", func(t *testing.T) {
		err := OpenBrowser("file:///etc/passwd")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		orig := getRuntime
		defer func() { getRuntime = orig }()
		getRuntime = func() string { return "plan9" }

		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
