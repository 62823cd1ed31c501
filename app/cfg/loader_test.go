package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:            "./newslens.db",
		ConfigPath:        "./channels.yml",
		RedisAddr:         "localhost:6379",
		Port:              "8080",
		TranslateEndpoint: "https://translate.example.com",
		WorkerCount:       3,
		SchedulerInterval: 60,
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBPath != "./newslens.db" {
		t.Errorf("Expected DB path './newslens.db', got '%s'", cfg.DBPath)
	}
	if cfg.ConfigPath != "./channels.yml" {
		t.Errorf("Expected config path './channels.yml', got '%s'", cfg.ConfigPath)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Expected redis addr 'localhost:6379', got '%s'", cfg.RedisAddr)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.TranslateEndpoint != "https://translate.example.com" {
		t.Errorf("Expected translate endpoint 'https://translate.example.com', got '%s'", cfg.TranslateEndpoint)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
