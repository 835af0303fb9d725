package schedule

import (
	"errors"
	"testing"
)

func TestSlotNumber(t *testing.T) {
	tests := []struct {
		time string
		want int
	}{
		{"08:00", 1},
		{"08:15", 2},
		{"08:30", 3},
		{"08:45", 4},
		{"09:00", 5},
		{"10:00", 9},
		{"12:00", 17},
		{"17:45", 40},
		{"08:07", 1},
		{"08:16", 2},
	}
	for _, tt := range tests {
		got, err := DefaultSlotNumberer.Number(tt.time)
		if err != nil {
			t.Errorf("Number(%q): unexpected error %v", tt.time, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Number(%q) = %d, want %d", tt.time, got, tt.want)
		}
	}
}

func TestSlotNumber_BeforeOpening(t *testing.T) {
	for _, tm := range []string{"07:59", "07:00", "00:00"} {
		_, err := DefaultSlotNumberer.Number(tm)
		if !errors.Is(err, ErrTimeOutsideDay) {
			t.Errorf("Number(%q): got %v, want ErrTimeOutsideDay", tm, err)
		}
	}
}

func TestSlotNumber_Malformed(t *testing.T) {
	for _, tm := range []string{"", "8:00", "08:0", "08.00", "25:00", "08:60", "noon"} {
		if _, err := DefaultSlotNumberer.Number(tm); !errors.Is(err, ErrTimeOutsideDay) {
			t.Errorf("Number(%q): got %v, want ErrTimeOutsideDay", tm, err)
		}
	}
}

func TestSlotNumber_CustomCadence(t *testing.T) {
	n := SlotNumberer{AnchorHour: 9, IntervalMin: 30}
	got, err := n.Number("10:30")
	if err != nil {
		t.Fatalf("Number: %v", err)
	}
	if got != 4 {
		t.Errorf("Number(10:30) = %d, want 4", got)
	}
}
