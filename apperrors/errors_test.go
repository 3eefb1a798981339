package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{NotFound("missing"), fiber.StatusNotFound},
		{Forbidden("nope"), fiber.StatusForbidden},
		{BadRequest("bad"), fiber.StatusBadRequest},
		{Internal(errors.New("db down")), fiber.StatusInternalServerError},
		{errors.New("untyped"), fiber.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("%v: expected status %d, got %d", c.err, c.want, got)
		}
	}
}

func TestInternalCauseNotLeaked(t *testing.T) {
	t.Parallel()

	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	if Message(err) != "internal error" {
		t.Fatalf("expected generic message, got %q", Message(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to remain reachable via errors.Is")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("submit verification: %w", BadRequest("already verified"))
	if KindOf(err) != KindBadRequest {
		t.Fatalf("expected bad request kind through wrapping, got %v", KindOf(err))
	}
	if !IsBadRequest(err) {
		t.Fatal("IsBadRequest should see through wrapping")
	}
	if Message(err) != "already verified" {
		t.Fatalf("expected original message, got %q", Message(err))
	}
}
