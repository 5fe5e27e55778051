package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"learner_id", "learner-42",
		"api_token", "abc",
		"peer_ids", []string{"p1", "p2"},
		"limit", 10,
	})
	if len(out) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(out))
	}
	if got, _ := out[1].(string); !strings.HasPrefix(got, "hash:") || strings.Contains(got, "learner-42") {
		t.Fatalf("learner id not hashed: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("token not redacted: %v", out[3])
	}
	if peers, ok := out[5].([]string); !ok || len(peers) != 2 || !strings.HasPrefix(peers[0], "hash:") {
		t.Fatalf("peer ids not hashed: %v", out[5])
	}
	if out[7] != 10 {
		t.Fatalf("plain value changed: %v", out[7])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"limit", 5, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestHashValueStable(t *testing.T) {
	a := hashValue("learner-1")
	b := hashValue("learner-1")
	if a != b {
		t.Fatalf("hash not stable: %s vs %s", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("empty input should hash to empty")
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.With("service", "test").Info("ignored", "learner_id", "x")
	l.Sync()
}
