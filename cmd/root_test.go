package cmd

import (
	"testing"
)

func TestSetAndGetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	SetVersion("9.9.9")
	if got := GetVersion(); got != "9.9.9" {
		t.Errorf("Expected version 9.9.9, got %s", got)
	}
}

func TestRootCommandConfiguration(t *testing.T) {
	if rootCmd.Use != "qakit" {
		t.Errorf("Expected Use to be 'qakit', got %s", rootCmd.Use)
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"generate":    false,
		"run":         false,
		"version":     false,
		"self-update": false,
	}

	for _, sub := range rootCmd.Commands() {
		name := sub.Name()
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}
