// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// VideoGenerator is an optional interface for providers that can turn a
// still image into a short video. Generation is asynchronous: SubmitVideo
// returns a job handle, PollVideo checks it, and DownloadVideo fetches the
// finished render. Only the Gemini provider (Veo models) implements it.
type VideoGenerator interface {
	// SubmitVideo starts an image-to-video job. imageBytes is the source
	// frame, mimeType its content type. Returns an opaque operation name
	// used for polling.
	SubmitVideo(ctx context.Context, prompt string, imageBytes []byte, mimeType string) (string, error)

	// PollVideo checks a previously submitted job. When done is true,
	// videoURI points at the downloadable render; an empty URI on a done
	// job is an error.
	PollVideo(ctx context.Context, operationName string) (done bool, videoURI string, err error)

	// DownloadVideo fetches the rendered video bytes from the URI returned
	// by PollVideo, authenticating as the provider requires.
	DownloadVideo(ctx context.Context, videoURI string) ([]byte, string, error)
}

// videoCapable returns the active provider as a VideoGenerator, or an error
// when the active provider cannot render video.
func (r *Registry) videoCapable() (VideoGenerator, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}
	vg, ok := p.(VideoGenerator)
	if !ok {
		return nil, fmt.Errorf("ai: provider %q does not support video generation", p.Name())
	}
	return vg, nil
}

// SubmitVideo starts an image-to-video job on the active provider.
func (r *Registry) SubmitVideo(ctx context.Context, prompt string, imageBytes []byte, mimeType string) (string, error) {
	vg, err := r.videoCapable()
	if err != nil {
		return "", err
	}
	return vg.SubmitVideo(ctx, prompt, imageBytes, mimeType)
}

// PollVideo checks a running video job on the active provider.
func (r *Registry) PollVideo(ctx context.Context, operationName string) (bool, string, error) {
	vg, err := r.videoCapable()
	if err != nil {
		return false, "", err
	}
	return vg.PollVideo(ctx, operationName)
}

// DownloadVideo fetches a finished render from the active provider.
func (r *Registry) DownloadVideo(ctx context.Context, videoURI string) ([]byte, string, error) {
	vg, err := r.videoCapable()
	if err != nil {
		return nil, "", err
	}
	return vg.DownloadVideo(ctx, videoURI)
}

// SupportsVideoGeneration returns true if the active provider can render video.
func (r *Registry) SupportsVideoGeneration() bool {
	_, err := r.videoCapable()
	return err == nil
}
