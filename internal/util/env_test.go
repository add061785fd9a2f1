package util

import "testing"

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TASKBOARD_TEST_KEY", "from-env")
	if got := EnvOrDefault("TASKBOARD_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("expected env value, got %q", got)
	}

	t.Setenv("TASKBOARD_TEST_KEY", "")
	if got := EnvOrDefault("TASKBOARD_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for empty value, got %q", got)
	}

	if got := EnvOrDefault("TASKBOARD_TEST_KEY_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for missing key, got %q", got)
	}
}
