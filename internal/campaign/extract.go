// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"encoding/json"
	"fmt"

	"brandforge/internal/ai"
	"brandforge/internal/brand"
)

const extractSystemPrompt = `You are a brand strategist. Reply with valid JSON only, no commentary or markdown. Ensure UK spelling and marketing nuances.`

const extractUserPrompt = `Analyze the following brand information and extract a "Business DNA Profile" in JSON format.
Input: %s

The response must strictly follow this JSON schema:
{
  "identity": {
    "colors": { "primary": "string (hex)", "secondary": "string (hex)", "accent": "string (hex)" },
    "fonts": "string",
    "tone": "string",
    "toneSettings": { "formality": "number", "enthusiasm": "number", "humour": "number" }
  },
  "visualStyle": {
    "imageStyle": "string",
    "consistencyRules": "string"
  },
  "messaging": {
    "valueProp": "string",
    "ctas": ["string"],
    "contact": { "website": "string", "email": "string", "phone": "string" }
  },
  "keywords": ["string"]
}`

// Extractor derives a brand profile from a free-form business description
// or URL via the active AI provider.
type Extractor struct {
	AI *ai.Registry
}

// Extract sends the description to the model and decodes the structured
// profile. Any transport or parse failure wraps ErrExtraction. A returned
// profile always carries a clamped tone vector.
func (e *Extractor) Extract(ctx context.Context, input string) (brand.Profile, error) {
	raw, err := e.AI.GenerateJSON(ctx, extractSystemPrompt, fmt.Sprintf(extractUserPrompt, input))
	if err != nil {
		return brand.Profile{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var profile brand.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return brand.Profile{}, fmt.Errorf("%w: decode: %v", ErrExtraction, err)
	}

	return profile.Normalize(), nil
}
