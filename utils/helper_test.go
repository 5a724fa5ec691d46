package utils

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
)

func TestDateOnly(t *testing.T) {
	yangon := time.FixedZone("MMT", 6*3600+1800)
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2024, 1, 2, 15, 4, 5, 6, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 2, 0, 30, 0, 0, yangon), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := DateOnly(tt.in); !got.Equal(tt.want) || got.Location() != time.UTC {
			t.Fatalf("DateOnly(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil || !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDate = %v, %v", got, err)
	}
	for _, bad := range []string{"", "2024-13-01", "02/01/2024", "2023-02-29"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) succeeded", bad)
		}
	}
}

func TestUniqueSliceKeepsFirstOccurrence(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Fatalf("UniqueSlice = %v", got)
	}
}

func TestBusinessLockWithoutRedis(t *testing.T) {
	config.UseRedis(nil)
	release, err := BusinessLock(context.Background(), "sales-order", "1", "utils", "TestBusinessLockWithoutRedis")
	if err != nil {
		t.Fatalf("BusinessLock: %v", err)
	}
	release()
}
