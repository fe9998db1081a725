package main

import (
	"os"
	"testing"

	"qakit/cmd"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func TestVersion(t *testing.T) {
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}

	testVersion := "1.2.3"
	version = testVersion
	if version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, version)
	}

	version = "dev"
}

func TestVersionInjection(t *testing.T) {
	original := cmd.GetVersion()
	defer cmd.SetVersion(original)

	cmd.SetVersion("4.5.6")
	if got := cmd.GetVersion(); got != "4.5.6" {
		t.Errorf("Expected injected version 4.5.6, got %s", got)
	}
}
