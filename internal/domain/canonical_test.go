package domain_test

import (
	"bytes"
	"testing"

	"github.com/goliatone/go-sitedraft/internal/domain"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	value := map[string]any{
		"zeta":  1,
		"alpha": "a",
		"nested": map[string]any{
			"b": true,
			"a": nil,
		},
	}
	got, err := domain.MarshalCanonical(value)
	if err != nil {
		t.Fatalf("marshal canonical: %v", err)
	}
	want := `{"alpha":"a","nested":{"a":null,"b":true},"zeta":1}`
	if string(got) != want {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestMarshalCanonicalIsStable(t *testing.T) {
	value := map[string]any{
		"pages": []any{
			map[string]any{"id": "home", "sections": []any{"hero", "footer"}},
		},
		"title": "Кодовая — IT",
	}
	first, err := domain.MarshalCanonical(value)
	if err != nil {
		t.Fatalf("first marshal: %v", err)
	}
	second, err := domain.MarshalCanonical(value)
	if err != nil {
		t.Fatalf("second marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("canonical form is not byte stable:\n%s\n%s", first, second)
	}
}

func TestMarshalCanonicalElideDropsTopLevelKeys(t *testing.T) {
	value := map[string]any{
		"configId":    "cfg_abc",
		"generatedAt": "2026-08-24T00:00:00Z",
		"brand":       map[string]any{"name": "Acme"},
	}
	got, err := domain.MarshalCanonicalElide(value, "configId", "generatedAt")
	if err != nil {
		t.Fatalf("marshal elide: %v", err)
	}
	want := `{"brand":{"name":"Acme"}}`
	if string(got) != want {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestCanonicalHashChangesWithContent(t *testing.T) {
	first, err := domain.CanonicalHash(map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := domain.CanonicalHash(map[string]any{"a": 2})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("distinct content must hash differently")
	}
	if len(first) != 64 {
		t.Fatalf("expected hex sha256, got %q", first)
	}
}
