// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"testing"

	"brandforge/internal/ai"
	"brandforge/internal/brand"
)

const copyJSON = `{"headline": "H", "body": "B", "caption": "C", "imagePrompt": "a warm cafe scene"}`

func copyReplies(n int) []string {
	r := make([]string, n)
	for i := range r {
		r[i] = copyJSON
	}
	return r
}

func TestDrafterFullBatch(t *testing.T) {
	stub := &stubProvider{
		replies:   copyReplies(4),
		imageData: []byte{0x89, 0x50},
		imageType: "image/png",
	}
	store := newTestStore()
	d := &Drafter{AI: newStubRegistry(stub), Media: store}

	assets, err := d.Draft(context.Background(), "sess-1", testProfile(t), "Ethical Sourcing Story", brand.GoalAwareness)
	if err != nil {
		t.Fatalf("Draft: unexpected error: %v", err)
	}

	if len(assets) != len(brand.DraftChannels) {
		t.Fatalf("assets: got %d, want %d", len(assets), len(brand.DraftChannels))
	}

	// One asset per channel, in the fixed fan-out order, each at the
	// channel's ratio and with its image materialized.
	for i, want := range brand.DraftChannels {
		a := assets[i]
		if a.Channel != want {
			t.Errorf("asset %d channel: got %s, want %s", i, a.Channel, want)
		}
		if a.Ratio != want.AspectRatio() {
			t.Errorf("asset %d ratio: got %s, want %s", i, a.Ratio, want.AspectRatio())
		}
		if !a.HasImage() {
			t.Errorf("asset %d has no image", i)
		}
		if _, err := store.Get(a.ImageID); err != nil {
			t.Errorf("asset %d image not in store: %v", i, err)
		}
		if a.Headline != "H" || a.Body != "B" || a.Caption != "C" {
			t.Errorf("asset %d copy: got %+v", i, a)
		}
	}
}

func TestDrafterPlaceholderOnNoImagePayload(t *testing.T) {
	stub := &stubProvider{
		replies:  copyReplies(4),
		imageErr: ai.ErrNoImagePayload,
	}
	store := newTestStore()
	d := &Drafter{AI: newStubRegistry(stub), Media: store}

	assets, err := d.Draft(context.Background(), "sess-1", testProfile(t), "Theme", brand.GoalPromotional)
	if err != nil {
		t.Fatalf("Draft should substitute placeholders, got error: %v", err)
	}

	for i, a := range assets {
		blob, err := store.Get(a.ImageID)
		if err != nil {
			t.Fatalf("asset %d image missing: %v", i, err)
		}
		if blob.ContentType != "image/png" {
			t.Errorf("asset %d placeholder type: got %q", i, blob.ContentType)
		}
		img, err := png.Decode(bytes.NewReader(blob.Data))
		if err != nil {
			t.Fatalf("asset %d placeholder not a PNG: %v", i, err)
		}
		b := img.Bounds()
		square := b.Dx() == b.Dy()
		if (a.Ratio == "1:1") != square {
			t.Errorf("asset %d placeholder shape %dx%d does not match ratio %s", i, b.Dx(), b.Dy(), a.Ratio)
		}
	}
}

func TestDrafterAbortsBatchOnCopyFailure(t *testing.T) {
	// Two good copy replies, then the queue runs dry: channel three fails.
	stub := &stubProvider{
		replies:   copyReplies(2),
		imageData: []byte{1},
		imageType: "image/png",
	}
	store := newTestStore()
	d := &Drafter{AI: newStubRegistry(stub), Media: store}

	_, err := d.Draft(context.Background(), "sess-1", testProfile(t), "Theme", brand.GoalStorytelling)
	if !errors.Is(err, ErrDrafting) {
		t.Fatalf("expected ErrDrafting, got %v", err)
	}

	// Partials from the failed attempt are discarded, media included.
	if store.Len() != 0 {
		t.Errorf("store should be empty after an aborted batch, has %d blobs", store.Len())
	}
}

func TestDrafterAbortsBatchOnImageFailure(t *testing.T) {
	stub := &stubProvider{
		replies:  copyReplies(4),
		imageErr: fmt.Errorf("render backend unavailable"),
	}
	store := newTestStore()
	d := &Drafter{AI: newStubRegistry(stub), Media: store}

	_, err := d.Draft(context.Background(), "sess-1", testProfile(t), "Theme", brand.GoalAwareness)
	if !errors.Is(err, ErrDrafting) {
		t.Fatalf("expected ErrDrafting, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store should be empty after an aborted batch, has %d blobs", store.Len())
	}
}
