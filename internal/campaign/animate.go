// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandforge/internal/ai"
	"brandforge/internal/brand"
	"brandforge/internal/media"
)

// PollState tracks where an animation job is in its lifecycle. The states
// are explicit so logs and tests can assert on the path a job took.
type PollState string

const (
	PollSubmitted PollState = "submitted"
	PollPolling   PollState = "polling"
	PollDone      PollState = "done"
	PollFailed    PollState = "failed"
	PollTimedOut  PollState = "timed_out"
)

// Animator turns an asset's still image into a short video via the
// provider's asynchronous render API, polling at a fixed interval until
// the job finishes or the overall timeout elapses. One Animator is shared
// by every session, so it carries no per-job state.
type Animator struct {
	AI    *ai.Registry
	Media *media.Store

	// PollInterval is the delay between status checks. Defaults to 5s.
	PollInterval time.Duration
	// Timeout bounds the whole submit-poll-download flow. Defaults to 10m.
	Timeout time.Duration
}

// Animate submits an image-to-video job for the given source image, waits
// for it to complete, downloads the render, and stores it in the media
// store, returning the new video blob ID and the job's terminal poll
// state. Every failure path wraps ErrAnimation and stores nothing.
func (a *Animator) Animate(ctx context.Context, owner string, imageID uuid.UUID, style brand.AnimationStyle, theme string) (uuid.UUID, PollState, error) {
	interval := a.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	if !a.AI.SupportsVideoGeneration() {
		return uuid.Nil, PollFailed, fmt.Errorf("%w: provider %q cannot render video", ErrAnimation, a.AI.ActiveName())
	}

	blob, err := a.Media.Get(imageID)
	if err != nil {
		return uuid.Nil, PollFailed, fmt.Errorf("%w: source image: %v", ErrAnimation, err)
	}

	prompt := fmt.Sprintf("A %s motion ad with %s for %s, high quality, realistic textures",
		strings.ToLower(style.Name), style.Motion, theme)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opName, err := a.AI.SubmitVideo(ctx, prompt, blob.Data, blob.ContentType)
	if err != nil {
		return uuid.Nil, PollFailed, fmt.Errorf("%w: submit: %v", ErrAnimation, err)
	}
	slog.Info("animation submitted", "operation", opName, "state", PollSubmitted, "style", style.Name)

	uri, state, err := a.poll(ctx, opName, interval)
	if err != nil {
		return uuid.Nil, state, err
	}

	data, contentType, err := a.AI.DownloadVideo(ctx, uri)
	if err != nil {
		return uuid.Nil, PollFailed, fmt.Errorf("%w: download: %v", ErrAnimation, err)
	}

	return a.Media.Put(owner, contentType, data), PollDone, nil
}

// poll checks the operation at the fixed interval until it reports done,
// fails, or the context deadline fires.
func (a *Animator) poll(ctx context.Context, opName string, interval time.Duration) (string, PollState, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Debug("animation polling", "operation", opName, "state", PollPolling, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return "", PollTimedOut, fmt.Errorf("%w: timed out waiting for render", ErrAnimation)
		case <-ticker.C:
			done, uri, err := a.AI.PollVideo(ctx, opName)
			if err != nil {
				return "", PollFailed, fmt.Errorf("%w: poll: %v", ErrAnimation, err)
			}
			if done {
				return uri, PollDone, nil
			}
		}
	}
}
