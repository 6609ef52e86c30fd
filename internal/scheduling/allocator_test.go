package scheduling

import (
	"errors"
	"reflect"
	"testing"
)

func TestAllocate(t *testing.T) {
	grid := NewSeatGrid([]string{"A", "B"}, []string{"1", "2"})

	tests := []struct {
		name      string
		tickets   int
		taken     []string
		expect    []string
		expectErr bool
	}{
		{
			name:    "empty showtime row-major order",
			tickets: 3,
			taken:   nil,
			expect:  []string{"A1", "A2", "B1"},
		},
		{
			name:    "skips taken seats",
			tickets: 2,
			taken:   []string{"A1", "B1"},
			expect:  []string{"A2", "B2"},
		},
		{
			name:    "fills exact remaining capacity",
			tickets: 1,
			taken:   []string{"A1", "A2", "B1"},
			expect:  []string{"B2"},
		},
		{
			name:      "one seat short",
			tickets:   2,
			taken:     []string{"A1", "A2", "B1"},
			expectErr: true,
		},
		{
			name:      "more tickets than capacity",
			tickets:   5,
			taken:     nil,
			expectErr: true,
		},
		{
			name:      "zero tickets rejected",
			tickets:   0,
			taken:     nil,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(grid, tt.tickets, TakenSet(tt.taken))
			if tt.expectErr {
				if !errors.Is(err, ErrInsufficientCapacity) {
					t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
				}
				if got != nil {
					t.Errorf("expected no partial allocation, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("Allocate() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestAllocateDeterministic(t *testing.T) {
	grid := NewSeatGrid([]string{"A", "B", "C"}, []string{"1", "2", "3", "4"})
	taken := TakenSet([]string{"A2", "B3"})

	first, err := Allocate(grid, 5, taken)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := Allocate(grid, 5, taken)
		if err != nil {
			t.Fatalf("Allocate failed on repeat: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("allocation not deterministic: %v vs %v", first, again)
		}
	}
}

func TestAllocateTakenOutsideGrid(t *testing.T) {
	grid := NewSeatGrid([]string{"A"}, []string{"1", "2"})

	// Labels outside the grid must not inflate remaining capacity
	_, err := Allocate(grid, 2, TakenSet([]string{"A1", "Z9"}))
	if !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
	}
}

func TestSeatGrid(t *testing.T) {
	grid := NewSeatGrid([]string{"A", "B"}, []string{"1", "2", "3"})

	if got := grid.Capacity(); got != 6 {
		t.Errorf("Capacity() = %d, want 6", got)
	}

	want := []string{"A1", "A2", "A3", "B1", "B2", "B3"}
	if got := grid.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}

	if !grid.Contains("B2") {
		t.Error("expected grid to contain B2")
	}
	if grid.Contains("C1") {
		t.Error("expected grid not to contain C1")
	}
}

func TestSeatGridImmutable(t *testing.T) {
	rows := []string{"A", "B"}
	cols := []string{"1", "2"}
	grid := NewSeatGrid(rows, cols)

	rows[0] = "Z"
	cols[1] = "9"

	want := []string{"A1", "A2", "B1", "B2"}
	if got := grid.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("grid mutated through caller slices: %v", got)
	}
}
