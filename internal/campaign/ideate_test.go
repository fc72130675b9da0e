// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"brandforge/internal/brand"
)

func testProfile(t *testing.T) brand.Profile {
	t.Helper()
	var p brand.Profile
	if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
		t.Fatalf("decode test profile: %v", err)
	}
	return p.Normalize()
}

func TestIdeatorSuccess(t *testing.T) {
	stub := &stubProvider{replies: []string{`[
		{"theme": "Ethical Sourcing Story", "angle": "Farm to cup", "hook": "Meet the growers"},
		{"theme": "Morning Ritual", "angle": "Daily moments", "hook": "Your first sip"},
		{"theme": "Small Batch Pride", "angle": "Craft quality", "hook": "Roasted this week"}
	]`}}
	i := &Ideator{AI: newStubRegistry(stub)}

	ideas, err := i.Ideate(context.Background(), testProfile(t), brand.GoalAwareness, "")
	if err != nil {
		t.Fatalf("Ideate: unexpected error: %v", err)
	}
	if len(ideas) != 3 {
		t.Fatalf("ideas: got %d, want 3", len(ideas))
	}
	if ideas[0].Theme != "Ethical Sourcing Story" {
		t.Errorf("first theme: got %q", ideas[0].Theme)
	}
}

func TestIdeatorToleratesOddListLength(t *testing.T) {
	// The three-idea contract is soft; two ideas still render.
	stub := &stubProvider{replies: []string{`[
		{"theme": "A", "angle": "a", "hook": "h"},
		{"theme": "B", "angle": "b", "hook": "h"}
	]`}}
	i := &Ideator{AI: newStubRegistry(stub)}

	ideas, err := i.Ideate(context.Background(), testProfile(t), brand.GoalLeadGen, "")
	if err != nil {
		t.Fatalf("Ideate: unexpected error: %v", err)
	}
	if len(ideas) != 2 {
		t.Errorf("ideas: got %d, want 2", len(ideas))
	}
}

func TestIdeatorEmptyList(t *testing.T) {
	stub := &stubProvider{replies: []string{`[]`}}
	i := &Ideator{AI: newStubRegistry(stub)}

	_, err := i.Ideate(context.Background(), testProfile(t), brand.GoalAwareness, "")
	if !errors.Is(err, ErrIdeation) {
		t.Fatalf("expected ErrIdeation for empty list, got %v", err)
	}
}

func TestIdeatorFailure(t *testing.T) {
	stub := &stubProvider{genErr: fmt.Errorf("upstream down")}
	i := &Ideator{AI: newStubRegistry(stub)}

	_, err := i.Ideate(context.Background(), testProfile(t), brand.GoalAwareness, "launch a spring push")
	if !errors.Is(err, ErrIdeation) {
		t.Fatalf("expected ErrIdeation, got %v", err)
	}
}
