package main

import "testing"

func TestNewLog(t *testing.T) {
	tests := map[string]struct {
		level   string
		wantErr bool
	}{
		"info":    {level: "info"},
		"debug":   {level: "debug"},
		"unknown": {level: "loud", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			logger, err := newLog("test", tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for level %q", tt.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatalf("expected logger")
			}
		})
	}
}
