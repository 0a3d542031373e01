package schedule

import (
	"errors"
	"testing"
)

func TestValidateStartHours(t *testing.T) {
	tests := []struct {
		name    string
		hours   []int
		wantErr error
	}{
		{"valid", []int{9, 14, 19}, nil},
		{"too few", []int{9, 14}, ErrBadSlotCount},
		{"too many", []int{9, 12, 14, 19}, ErrBadSlotCount},
		{"out of range", []int{9, 14, 24}, ErrHourOutOfDay},
		{"negative", []int{-1, 14, 19}, ErrHourOutOfDay},
		{"not ascending", []int{9, 9, 19}, ErrHoursNotOrder},
		{"descending", []int{19, 14, 9}, ErrHoursNotOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStartHours(tt.hours)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssign(t *testing.T) {
	a, err := New([]int{9, 14, 19}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("maps positions to slots", func(t *testing.T) {
		want := []Slot{
			{Start: "09:00", End: "10:00"},
			{Start: "14:00", End: "15:00"},
			{Start: "19:00", End: "20:00"},
		}
		for i, w := range want {
			got, ok := a.Assign(i)
			if !ok {
				t.Fatalf("Assign(%d) not ok", i)
			}
			if got != w {
				t.Errorf("Assign(%d) = %v, want %v", i, got, w)
			}
		}
	})

	t.Run("out of range positions", func(t *testing.T) {
		if _, ok := a.Assign(3); ok {
			t.Error("Assign(3) ok, want false")
		}
		if _, ok := a.Assign(-1); ok {
			t.Error("Assign(-1) ok, want false")
		}
	})

	t.Run("slots clamps to slot count", func(t *testing.T) {
		if got := len(a.Slots(5)); got != SlotCount {
			t.Errorf("len(Slots(5)) = %d, want %d", got, SlotCount)
		}
		if got := len(a.Slots(2)); got != 2 {
			t.Errorf("len(Slots(2)) = %d, want 2", got)
		}
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]int{9, 14, 19}, 0); !errors.Is(err, ErrBadDuration) {
		t.Errorf("got %v, want %v", err, ErrBadDuration)
	}
	if _, err := New([]int{9}, 60); !errors.Is(err, ErrBadSlotCount) {
		t.Errorf("got %v, want %v", err, ErrBadSlotCount)
	}
}

func TestTimeConversions(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, m := range []int{0, 60, 9*60 + 30, 23*60 + 59} {
			if got := TimeToMinutes(MinutesToTime(m)); got != m {
				t.Errorf("round trip %d = %d", m, got)
			}
		}
	})

	t.Run("clamps", func(t *testing.T) {
		if got := MinutesToTime(-5); got != "00:00" {
			t.Errorf("got %q, want 00:00", got)
		}
		if got := MinutesToTime(25 * 60); got != "23:59" {
			t.Errorf("got %q, want 23:59", got)
		}
	})
}
