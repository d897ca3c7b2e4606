package ticktime

import (
	"errors"
	"testing"

	"github.com/seekernet/registry/internal/safemath"
)

func TestEpochAt(t *testing.T) {
	t.Run("at genesis", func(t *testing.T) {
		if got := EpochAt(1000, 1000); got != 0 {
			t.Errorf("EpochAt(1000, 1000): got %d, want 0", got)
		}
	})

	t.Run("before genesis", func(t *testing.T) {
		if got := EpochAt(5, 1000); got != 0 {
			t.Errorf("EpochAt(5, 1000): got %d, want 0", got)
		}
	})

	t.Run("last tick of first epoch", func(t *testing.T) {
		if got := EpochAt(1000+TicksPerEpoch-1, 1000); got != 0 {
			t.Errorf("EpochAt on last tick of epoch 0: got %d, want 0", got)
		}
	})

	t.Run("epoch boundaries", func(t *testing.T) {
		for _, k := range []Epoch{1, 2, 7, 1000} {
			tick := Tick(1000 + uint64(k)*TicksPerEpoch)
			if got := EpochAt(tick, 1000); got != k {
				t.Errorf("EpochAt(genesis + %d*width): got %d, want %d", k, got, k)
			}
		}
	})

	t.Run("mid epoch", func(t *testing.T) {
		tick := Tick(1000 + 3*TicksPerEpoch + TicksPerEpoch/2)
		if got := EpochAt(tick, 1000); got != 3 {
			t.Errorf("EpochAt mid epoch 3: got %d, want 3", got)
		}
	})
}

func TestEpochRange(t *testing.T) {
	t.Run("first epoch", func(t *testing.T) {
		start, end, err := EpochRange(0, 1000)
		if err != nil {
			t.Fatalf("EpochRange(0, 1000): unexpected error %v", err)
		}
		if start != 1000 || end != 1000+TicksPerEpoch-1 {
			t.Errorf("EpochRange(0, 1000): got [%d, %d]", start, end)
		}
	})

	t.Run("arbitrary epoch", func(t *testing.T) {
		start, end, err := EpochRange(5, 0)
		if err != nil {
			t.Fatalf("EpochRange(5, 0): unexpected error %v", err)
		}
		if start != 5*TicksPerEpoch || end != 6*TicksPerEpoch-1 {
			t.Errorf("EpochRange(5, 0): got [%d, %d]", start, end)
		}
	})

	t.Run("range matches EpochAt", func(t *testing.T) {
		start, end, err := EpochRange(9, 123)
		if err != nil {
			t.Fatalf("EpochRange(9, 123): unexpected error %v", err)
		}
		if EpochAt(start, 123) != 9 || EpochAt(end, 123) != 9 {
			t.Errorf("ticks of epoch 9 do not map back to it")
		}
		if EpochAt(end+1, 123) != 10 {
			t.Errorf("tick after epoch 9 should map to epoch 10")
		}
	})

	t.Run("overflow", func(t *testing.T) {
		_, _, err := EpochRange(^Epoch(0), ^Tick(0))
		if !errors.Is(err, safemath.ErrOverflow) {
			t.Errorf("expected overflow error, got %v", err)
		}
	})
}

func TestEpochNext(t *testing.T) {
	if got := Epoch(0).Next(); got != 1 {
		t.Errorf("Next of 0: got %d, want 1", got)
	}
	if got := MaxEpoch.Next(); got != MaxEpoch {
		t.Errorf("Next of MaxEpoch: got %d, want %d", got, MaxEpoch)
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(10)
	if c.CurrentTick() != 10 {
		t.Errorf("CurrentTick: got %d, want 10", c.CurrentTick())
	}
	c.Advance(5)
	if c.CurrentTick() != 15 {
		t.Errorf("CurrentTick after Advance: got %d, want 15", c.CurrentTick())
	}
	c.Set(100)
	if c.CurrentTick() != 100 {
		t.Errorf("CurrentTick after Set: got %d, want 100", c.CurrentTick())
	}
}
