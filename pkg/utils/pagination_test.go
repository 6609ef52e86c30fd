package utils

import "testing"

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single item", 1, 10, 1},
		{"empty", 0, 10, 0},
		{"zero per page", 20, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateTotalPages(tc.total, tc.perPage); got != tc.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	cases := []struct {
		name    string
		page    int
		perPage int
		want    int
	}{
		{"first page", 1, 10, 0},
		{"second page", 2, 10, 10},
		{"page below one clamps", 0, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateOffset(tc.page, tc.perPage); got != tc.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tc.page, tc.perPage, got, tc.want)
			}
		})
	}
}
