package requestctx

import (
	"context"
	"testing"
)

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)

	got, ok := UserIDFromContext(ctx)
	if !ok {
		t.Fatal("expected user id to be present")
	}
	if got != 42 {
		t.Fatalf("expected user id 42, got %d", got)
	}
}

func TestUserIDMissing(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Fatal("expected no user id on empty context")
	}
	if _, ok := UserIDFromContext(nil); ok {
		t.Fatal("expected no user id on nil context")
	}
}

func TestWithUserIDNilContext(t *testing.T) {
	ctx := WithUserID(nil, 7)
	got, ok := UserIDFromContext(ctx)
	if !ok || got != 7 {
		t.Fatalf("expected user id 7, got %d (present=%v)", got, ok)
	}
}
