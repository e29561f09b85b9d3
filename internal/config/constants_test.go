package config

import "testing"

func TestConstants(t *testing.T) {
	if DefaultRefreshInterval <= 0 || DefaultRouteCacheTTL <= 0 || DefaultPersistDebounce <= 0 {
		t.Fatalf("durations must be positive")
	}
	if AppName == "" || GuestDBFile == "" || LocalStoreDir == "" {
		t.Fatalf("names should not be empty")
	}
	if DefaultHistoryLimit <= 0 || DefaultHistoryLimit > MaxHistoryLimit {
		t.Fatalf("DefaultHistoryLimit out of range")
	}
}
