// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"brandforge/internal/ai"
	"brandforge/internal/brand"
)

func TestAnimatorSuccess(t *testing.T) {
	stub := &stubProvider{
		submitName:    "models/veo/operations/op1",
		pollDoneAfter: 2,
		pollURI:       "https://dl.example.com/v.mp4",
		videoData:     []byte("mp4"),
	}
	store := newTestStore()
	imageID := store.Put("sess-1", "image/png", []byte{1, 2})

	a := &Animator{
		AI:           newStubRegistry(stub),
		Media:        store,
		PollInterval: 5 * time.Millisecond,
		Timeout:      time.Second,
	}

	videoID, state, err := a.Animate(context.Background(), "sess-1", imageID, brand.StyleByName("Cinematic"), "Ethical Sourcing Story")
	if err != nil {
		t.Fatalf("Animate: unexpected error: %v", err)
	}
	if state != PollDone {
		t.Errorf("final state: got %s, want %s", state, PollDone)
	}

	blob, err := store.Get(videoID)
	if err != nil {
		t.Fatalf("video not in store: %v", err)
	}
	if blob.ContentType != "video/mp4" {
		t.Errorf("video content type: got %q", blob.ContentType)
	}
	if stub.pollCalls < 2 {
		t.Errorf("poll calls: got %d, want at least 2", stub.pollCalls)
	}
}

func TestAnimatorTimesOut(t *testing.T) {
	// Job never reports done; the overall deadline fires.
	stub := &stubProvider{submitName: "op/slow"}
	store := newTestStore()
	imageID := store.Put("sess-1", "image/png", []byte{1})

	a := &Animator{
		AI:           newStubRegistry(stub),
		Media:        store,
		PollInterval: 5 * time.Millisecond,
		Timeout:      40 * time.Millisecond,
	}

	_, state, err := a.Animate(context.Background(), "sess-1", imageID, brand.StyleByName("Playful"), "Theme")
	if !errors.Is(err, ErrAnimation) {
		t.Fatalf("expected ErrAnimation, got %v", err)
	}
	if state != PollTimedOut {
		t.Errorf("final state: got %s, want %s", state, PollTimedOut)
	}
	// Nothing but the source image is left in the store.
	if store.Len() != 1 {
		t.Errorf("store blobs: got %d, want 1", store.Len())
	}
}

func TestAnimatorFailurePaths(t *testing.T) {
	t.Run("missing source image", func(t *testing.T) {
		a := &Animator{AI: newStubRegistry(&stubProvider{}), Media: newTestStore(),
			PollInterval: time.Millisecond, Timeout: time.Second}

		_, _, err := a.Animate(context.Background(), "sess-1", uuid.New(), brand.AnimationStyles[0], "Theme")
		if !errors.Is(err, ErrAnimation) {
			t.Fatalf("expected ErrAnimation, got %v", err)
		}
	})

	t.Run("submit fails", func(t *testing.T) {
		stub := &stubProvider{submitErr: fmt.Errorf("quota exhausted")}
		store := newTestStore()
		imageID := store.Put("sess-1", "image/png", []byte{1})
		a := &Animator{AI: newStubRegistry(stub), Media: store,
			PollInterval: time.Millisecond, Timeout: time.Second}

		_, state, err := a.Animate(context.Background(), "sess-1", imageID, brand.AnimationStyles[0], "Theme")
		if !errors.Is(err, ErrAnimation) {
			t.Fatalf("expected ErrAnimation, got %v", err)
		}
		if state != PollFailed {
			t.Errorf("final state: got %s, want %s", state, PollFailed)
		}
	})

	t.Run("poll fails", func(t *testing.T) {
		stub := &stubProvider{submitName: "op/1", pollErr: fmt.Errorf("operation vanished")}
		store := newTestStore()
		imageID := store.Put("sess-1", "image/png", []byte{1})
		a := &Animator{AI: newStubRegistry(stub), Media: store,
			PollInterval: time.Millisecond, Timeout: time.Second}

		_, state, err := a.Animate(context.Background(), "sess-1", imageID, brand.AnimationStyles[0], "Theme")
		if !errors.Is(err, ErrAnimation) {
			t.Fatalf("expected ErrAnimation, got %v", err)
		}
		if state != PollFailed {
			t.Errorf("final state: got %s, want %s", state, PollFailed)
		}
	})

	t.Run("download fails", func(t *testing.T) {
		stub := &stubProvider{
			submitName:    "op/1",
			pollDoneAfter: 1,
			pollURI:       "https://dl.example.com/v.mp4",
			videoErr:      fmt.Errorf("expired link"),
		}
		store := newTestStore()
		imageID := store.Put("sess-1", "image/png", []byte{1})
		a := &Animator{AI: newStubRegistry(stub), Media: store,
			PollInterval: time.Millisecond, Timeout: time.Second}

		_, _, err := a.Animate(context.Background(), "sess-1", imageID, brand.AnimationStyles[0], "Theme")
		if !errors.Is(err, ErrAnimation) {
			t.Fatalf("expected ErrAnimation, got %v", err)
		}
		if store.Len() != 1 {
			t.Errorf("no video should be stored on failure; store has %d blobs", store.Len())
		}
	})
}

// textOnlyProvider implements Provider but not VideoGenerator.
type textOnlyProvider struct{}

func (textOnlyProvider) Name() string { return "text-only" }
func (textOnlyProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", nil
}

func TestAnimatorProviderWithoutVideo(t *testing.T) {
	reg := ai.NewRegistry("text-only", nil)
	reg.Register("text-only", textOnlyProvider{})
	store := newTestStore()
	imageID := store.Put("sess-1", "image/png", []byte{1})

	a := &Animator{AI: reg, Media: store,
		PollInterval: time.Millisecond, Timeout: time.Second}

	_, state, err := a.Animate(context.Background(), "sess-1", imageID, brand.AnimationStyles[0], "Theme")
	if !errors.Is(err, ErrAnimation) {
		t.Fatalf("expected ErrAnimation, got %v", err)
	}
	if state != PollFailed {
		t.Errorf("final state: got %s, want %s", state, PollFailed)
	}
	if store.Len() != 1 {
		t.Errorf("store blobs: got %d, want 1", store.Len())
	}
}

func TestAnimatorSharedAcrossSessions(t *testing.T) {
	// One Animator serves every session; jobs for different owners must
	// not observe each other's poll state.
	stub := &stubProvider{
		submitName:    "op/shared",
		pollDoneAfter: 1,
		pollURI:       "https://dl.example.com/v.mp4",
		videoData:     []byte("mp4"),
	}
	store := newTestStore()
	a := &Animator{
		AI:           newStubRegistry(stub),
		Media:        store,
		PollInterval: time.Millisecond,
		Timeout:      time.Second,
	}

	owners := []string{"sess-1", "sess-2"}
	var wg sync.WaitGroup
	results := make([]PollState, len(owners))
	errs := make([]error, len(owners))
	for i, owner := range owners {
		imageID := store.Put(owner, "image/png", []byte{byte(i)})
		wg.Add(1)
		go func(i int, owner string, imageID uuid.UUID) {
			defer wg.Done()
			_, state, err := a.Animate(context.Background(), owner, imageID, brand.AnimationStyles[0], "Theme")
			results[i] = state
			errs[i] = err
		}(i, owner, imageID)
	}
	wg.Wait()

	for i, owner := range owners {
		if errs[i] != nil {
			t.Errorf("%s: unexpected error: %v", owner, errs[i])
		}
		if results[i] != PollDone {
			t.Errorf("%s: final state: got %s, want %s", owner, results[i], PollDone)
		}
	}
	// Two source images and two renders.
	if store.Len() != 4 {
		t.Errorf("store blobs: got %d, want 4", store.Len())
	}
}
