package identity_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/identity"
)

func TestUUID_IsDeterministic(t *testing.T) {
	first := identity.UUID("go-sitebuilder:test:alpha")
	second := identity.UUID("go-sitebuilder:test:alpha")
	if first != second {
		t.Fatalf("same key must yield same uuid: %s vs %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatal("non-empty key must not yield nil uuid")
	}
	if other := identity.UUID("go-sitebuilder:test:beta"); other == first {
		t.Fatal("different keys must yield different uuids")
	}
}

func TestUUID_EmptyKeyIsNil(t *testing.T) {
	if got := identity.UUID("   "); got != uuid.Nil {
		t.Fatalf("blank key should yield nil uuid, got %s", got)
	}
}

func TestPreviewUUID_SeparatesDomains(t *testing.T) {
	prefixed := identity.PreviewUUID("coworking_hero|{}")
	bare := identity.UUID("coworking_hero|{}")
	if prefixed == bare {
		t.Fatal("domain prefix must prevent cross-entity collisions")
	}
}
