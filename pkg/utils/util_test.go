package util

import (
	"encoding/base64"
	"testing"
)

func TestGenerateBase64Key(t *testing.T) {
	t.Run("produces a 32-byte key", func(t *testing.T) {
		key, err := GenerateBase64Key(32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		decoded, err := base64.URLEncoding.DecodeString(key)
		if err != nil {
			t.Fatalf("key is not valid URL-safe base64: %v", err)
		}
		if len(decoded) != 32 {
			t.Errorf("expected 32 decoded bytes, got %d", len(decoded))
		}
	})

	t.Run("keys are not repeated", func(t *testing.T) {
		first, err := GenerateBase64Key(32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := GenerateBase64Key(32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == second {
			t.Error("two generated keys must not match")
		}
	})

	t.Run("rejects sizes other than 32", func(t *testing.T) {
		if _, err := GenerateBase64Key(16); err == nil {
			t.Error("expected an error for a 16-byte request")
		}
	})
}
