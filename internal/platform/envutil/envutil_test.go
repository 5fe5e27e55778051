package envutil

import (
	"testing"
	"time"
)

func TestEnvParsing(t *testing.T) {
	t.Setenv("RECSYS_TEST_INT", "12")
	t.Setenv("RECSYS_TEST_BAD_INT", "twelve")
	t.Setenv("RECSYS_TEST_FLOAT", "0.25")
	t.Setenv("RECSYS_TEST_BOOL", "on")
	t.Setenv("RECSYS_TEST_DUR", "90s")
	t.Setenv("RECSYS_TEST_DUR_SECS", "5")
	t.Setenv("RECSYS_TEST_STR", "  redis:6379 ")

	if got := Int("RECSYS_TEST_INT", 1); got != 12 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("RECSYS_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := Float("RECSYS_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: got %v", got)
	}
	if !Bool("RECSYS_TEST_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if Bool("RECSYS_TEST_MISSING", false) {
		t.Fatalf("Bool default: expected false")
	}
	if got := Duration("RECSYS_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration: got %v", got)
	}
	if got := Duration("RECSYS_TEST_DUR_SECS", time.Second); got != 5*time.Second {
		t.Fatalf("Duration seconds: got %v", got)
	}
	if got := String("RECSYS_TEST_STR", ""); got != "redis:6379" {
		t.Fatalf("String: got %q", got)
	}

	t.Setenv("RECSYS_TEST_LIST", " https://a.test, ,https://b.test ")
	if got := List("RECSYS_TEST_LIST", nil); len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("List: got %v", got)
	}
	if got := List("RECSYS_TEST_MISSING", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("List default: got %v", got)
	}
}
