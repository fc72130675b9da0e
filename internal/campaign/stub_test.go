// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"fmt"
	"sync"

	"brandforge/internal/ai"
	"brandforge/internal/media"
)

// stubProvider is a configurable test double implementing Provider,
// ImageGenerator, and VideoGenerator. Text replies are consumed in order.
type stubProvider struct {
	mu      sync.Mutex
	replies []string
	genErr  error

	imageData []byte
	imageType string
	imageErr  error

	submitName    string
	submitErr     error
	submitCalls   int
	pollDoneAfter int // poll call number on which the job reports done
	pollURI       string
	pollErr       error
	pollCalls     int
	videoData     []byte
	videoErr      error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.genErr != nil {
		return "", s.genErr
	}
	if len(s.replies) == 0 {
		return "", fmt.Errorf("stub: no reply queued")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

func (s *stubProvider) GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageErr != nil {
		return nil, "", s.imageErr
	}
	return s.imageData, s.imageType, nil
}

func (s *stubProvider) SubmitVideo(ctx context.Context, prompt string, imageBytes []byte, mimeType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitCalls++
	if s.submitErr != nil {
		return "", s.submitErr
	}
	return s.submitName, nil
}

func (s *stubProvider) PollVideo(ctx context.Context, operationName string) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollCalls++
	if s.pollErr != nil {
		return false, "", s.pollErr
	}
	if s.pollDoneAfter > 0 && s.pollCalls >= s.pollDoneAfter {
		return true, s.pollURI, nil
	}
	return false, "", nil
}

func (s *stubProvider) DownloadVideo(ctx context.Context, videoURI string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoErr != nil {
		return nil, "", s.videoErr
	}
	return s.videoData, "video/mp4", nil
}

// newStubRegistry wires a stub provider into a registry as the active one.
func newStubRegistry(stub *stubProvider) *ai.Registry {
	reg := ai.NewRegistry("stub", nil)
	reg.Register("stub", stub)
	return reg
}

// newTestStore is a fresh media store for one test.
func newTestStore() *media.Store { return media.NewStore() }

const profileJSON = `{
  "identity": {
    "colors": {"primary": "#1b3a2f", "secondary": "#e8e0d4", "accent": "#c87f42"},
    "fonts": "Serif headings, clean sans body",
    "tone": "Warm/Authentic",
    "toneSettings": {"formality": 40, "enthusiasm": 70, "humour": 30}
  },
  "visualStyle": {"imageStyle": "Natural light photography", "consistencyRules": "Earthy palette"},
  "messaging": {
    "valueProp": "Ethically sourced coffee, roasted in small batches",
    "ctas": ["Order a bag", "Visit the roastery"],
    "contact": {"website": "example.co.uk", "email": "hello@example.co.uk", "phone": "+44 20 0000 0000"}
  },
  "keywords": ["coffee", "ethical", "artisanal"]
}`
