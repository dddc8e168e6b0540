// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesSpec(t *testing.T) {
	c := Default()
	if c.Address != "127.0.0.1:24224" {
		t.Errorf("Address = %q, want 127.0.0.1:24224", c.Address)
	}
	if c.Retry.InitialWaitMS != 500 || c.Retry.MaxAttempts != 10 || c.Retry.MaxWaitMS != 60000 {
		t.Errorf("Retry defaults = %+v, want 500/10/60000", c.Retry)
	}
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("retry:\n  max_attempts: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Address != "127.0.0.1:24224" {
		t.Errorf("Address = %q, want default", cfg.Address)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialWaitMS != 500 {
		t.Errorf("InitialWaitMS = %d, want default 500", cfg.Retry.InitialWaitMS)
	}
}

func TestLoadRejectsInvalidRetry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	body := "retry:\n  initial_wait_ms: 5000\n  max_wait_ms: 1000\n  max_attempts: 3\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error when initial_wait_ms > max_wait_ms")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
