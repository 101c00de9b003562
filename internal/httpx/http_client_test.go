package httpx

import (
	"testing"
	"time"
)

func TestConfigureExternalHTTPClient(t *testing.T) {
	original := Client().Timeout
	t.Cleanup(func() { externalHTTPClient.Timeout = original })

	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, defaultExternalHTTPTimeout},
		{-3, defaultExternalHTTPTimeout},
		{1, time.Second},
		{120, 2 * time.Minute},
	}
	for _, tc := range tests {
		if got := ConfigureExternalHTTPClient(tc.seconds); got != tc.want {
			t.Errorf("ConfigureExternalHTTPClient(%d) = %s, want %s", tc.seconds, got, tc.want)
		}
		if Client().Timeout != tc.want {
			t.Errorf("after ConfigureExternalHTTPClient(%d) shared client timeout = %s, want %s", tc.seconds, Client().Timeout, tc.want)
		}
	}
}
