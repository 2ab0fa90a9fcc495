package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestToQuanta(t *testing.T) {
	tests := []struct {
		display string
		want    int64
	}{
		{"0", 0},
		{"1", 100},
		{"100", 10000},
		{"0.5", 50},
		{"12.34", 1234},
		{"12.345", 1234}, // sub-quanta precision is truncated
	}

	for _, tt := range tests {
		got := ToQuanta(decimal.RequireFromString(tt.display))
		if got != tt.want {
			t.Errorf("ToQuanta(%s) = %d, want %d", tt.display, got, tt.want)
		}
	}
}

func TestFromQuanta(t *testing.T) {
	if got := FromQuanta(1234); !got.Equal(decimal.RequireFromString("12.34")) {
		t.Errorf("FromQuanta(1234) = %s, want 12.34", got)
	}
}

func TestApplyMarkup(t *testing.T) {
	tests := []struct {
		price  int64
		factor string
		want   int64
	}{
		{100, "1.1", 110},
		{100, "1", 100},
		{333, "1.1", 366}, // 366.3 truncated
		{0, "1.5", 0},
	}

	for _, tt := range tests {
		got := ApplyMarkup(tt.price, decimal.RequireFromString(tt.factor))
		if got != tt.want {
			t.Errorf("ApplyMarkup(%d, %s) = %d, want %d", tt.price, tt.factor, got, tt.want)
		}
	}
}

func TestCraftingJobDone(t *testing.T) {
	start := time.Now()
	j := CraftingJob{Start: start, Duration: time.Minute}

	if j.Done(start.Add(30 * time.Second)) {
		t.Error("Done = true before duration elapsed")
	}
	if !j.Done(start.Add(time.Minute)) {
		t.Error("Done = false exactly at start+duration")
	}
	if !j.Done(start.Add(2 * time.Minute)) {
		t.Error("Done = false after duration elapsed")
	}
}
