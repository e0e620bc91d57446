package errors

import (
	"testing"
)

func TestSentinelWrapping(t *testing.T) {
	t.Run("wrapped timeout is still a timeout", func(t *testing.T) {
		err := Wrapf(ErrTimeout, "stage %q exceeded 12s", "Discover")
		if !IsTimeout(err) {
			t.Error("expected wrapped ErrTimeout to satisfy IsTimeout")
		}
		if IsNotFound(err) {
			t.Error("timeout should not be a not-found error")
		}
	})

	t.Run("wrapped not-found keeps its kind", func(t *testing.T) {
		err := Wrap(ErrNotFound, "geocode destination")
		if !IsNotFound(err) {
			t.Error("expected wrapped ErrNotFound to satisfy IsNotFound")
		}
	})

	t.Run("nil is neither kind", func(t *testing.T) {
		if IsTimeout(nil) || IsNotFound(nil) {
			t.Error("nil error should not match any sentinel")
		}
	})
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(New("inner"), "outer")
	if got := err.Error(); got != "outer: inner" {
		t.Errorf("unexpected message: %q", got)
	}
}
