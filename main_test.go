package main

import (
	"errors"
	"testing"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

func TestSetupGenerator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"gemini key set", Config{GeminiAPIKey: "g-key", GeminiModel: "gemini-2.5-flash"}, nil},
		{"gateway key set", Config{GatewayAPIKey: "gw-key", GatewayModel: "google/gemini-2.5-flash"}, nil},
		{"gemini wins when both set", Config{GeminiAPIKey: "g-key", GatewayAPIKey: "gw-key"}, nil},
		{"no keys", Config{}, domain.ErrMissingAPIKey},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			generator, err := setupGenerator(test.cfg)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("err = %v, want %v", err, test.wantErr)
			}
			if test.wantErr == nil && generator == nil {
				t.Error("expected a generator")
			}
		})
	}
}
