// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"brandforge/internal/brand"
)

func TestExtractorSuccess(t *testing.T) {
	stub := &stubProvider{replies: []string{profileJSON}}
	e := &Extractor{AI: newStubRegistry(stub)}

	profile, err := e.Extract(context.Background(), "UK artisanal coffee roaster, ethical sourcing")
	if err != nil {
		t.Fatalf("Extract: unexpected error: %v", err)
	}

	if profile.Identity.Tone != "Warm/Authentic" {
		t.Errorf("tone label: got %q, want Warm/Authentic", profile.Identity.Tone)
	}
	want := brand.ToneVector{Formality: 40, Enthusiasm: 70, Humour: 30}
	if profile.Identity.ToneV != want {
		t.Errorf("tone vector: got %+v, want %+v", profile.Identity.ToneV, want)
	}
	if len(profile.Messaging.CTAs) != 2 {
		t.Errorf("ctas: got %d, want 2", len(profile.Messaging.CTAs))
	}
}

func TestExtractorDefaultsMissingToneVector(t *testing.T) {
	// toneSettings absent from the reply entirely.
	stub := &stubProvider{replies: []string{`{
		"identity": {"colors": {"primary": "#000"}, "fonts": "sans", "tone": "Bold"},
		"visualStyle": {"imageStyle": "flat", "consistencyRules": ""},
		"messaging": {"valueProp": "v", "ctas": [], "contact": {}},
		"keywords": []
	}`}}
	e := &Extractor{AI: newStubRegistry(stub)}

	profile, err := e.Extract(context.Background(), "a brand")
	if err != nil {
		t.Fatalf("Extract: unexpected error: %v", err)
	}
	if profile.Identity.ToneV != brand.DefaultTone {
		t.Errorf("tone vector: got %+v, want default %+v", profile.Identity.ToneV, brand.DefaultTone)
	}
}

func TestExtractorStripsFences(t *testing.T) {
	stub := &stubProvider{replies: []string{"```json\n" + profileJSON + "\n```"}}
	e := &Extractor{AI: newStubRegistry(stub)}

	profile, err := e.Extract(context.Background(), "a brand")
	if err != nil {
		t.Fatalf("Extract should tolerate fenced replies: %v", err)
	}
	if profile.Identity.Tone != "Warm/Authentic" {
		t.Errorf("tone label: got %q", profile.Identity.Tone)
	}
}

func TestExtractorFailure(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		stub := &stubProvider{genErr: fmt.Errorf("upstream down")}
		e := &Extractor{AI: newStubRegistry(stub)}

		_, err := e.Extract(context.Background(), "a brand")
		if !errors.Is(err, ErrExtraction) {
			t.Fatalf("expected ErrExtraction, got %v", err)
		}
	})

	t.Run("unparseable reply", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"I am sorry, I cannot do that."}}
		e := &Extractor{AI: newStubRegistry(stub)}

		_, err := e.Extract(context.Background(), "a brand")
		if !errors.Is(err, ErrExtraction) {
			t.Fatalf("expected ErrExtraction, got %v", err)
		}
	})
}
