package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{"recommend", "path", "jobs", "forecast", "sync-graph"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered (err=%v)", name, err)
		}
	}
}

// Argument and flag validation runs before any store is opened.
func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"recommend without learner", []string{"recommend"}, "accepts 1 arg"},
		{"path without flags", []string{"path", "u1"}, "required flag"},
		{"forecast without target", []string{"forecast", "u1"}, "required flag"},
		{"sync-graph with args", []string{"sync-graph", "extra"}, "unknown command"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tc.args)
			err := rootCmd.Execute()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	compact = true
	t.Cleanup(func() { compact = false })
	if err := printJSON(&buf, map[string]int{"synced": 3}); err != nil {
		t.Fatalf("printJSON: %v", err)
	}
	if got := buf.String(); got != "{\"synced\":3}\n" {
		t.Fatalf("got %q", got)
	}
}
