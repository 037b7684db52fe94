package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(NotFound("user was not found")); got != KindNotFound {
		t.Fatalf("got %q; want %q", got, KindNotFound)
	}
	if got := KindOf(fmt.Errorf("create booking: %w", AccessDenied("owner"))); got != KindAccessDenied {
		t.Fatalf("wrapped: got %q; want %q", got, KindAccessDenied)
	}
	if got := KindOf(errors.New("plain")); got != Kind("") {
		t.Fatalf("plain error: got %q; want empty kind", got)
	}
	if got := KindOf(nil); got != Kind("") {
		t.Fatalf("nil error: got %q; want empty kind", got)
	}
}

func TestMessagePassThrough(t *testing.T) {
	err := Validation("unable to create booking with end time equal to start time")
	if err.Error() != "unable to create booking with end time equal to start time" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
