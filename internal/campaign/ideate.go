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

const ideateSystemPrompt = `You are a marketing campaign strategist for the UK market. Reply with valid JSON only, no commentary or markdown.`

// Ideator fetches candidate campaign themes for a profile and goal.
type Ideator struct {
	AI *ai.Registry
}

// Ideate requests campaign ideas. steering is an optional user prompt that
// replaces the default context line. Three ideas are expected but the list
// length is not enforced; an empty list is an ErrIdeation because there is
// nothing to present. Each call stands alone, so repeated invocations
// ("generate new angles") simply replace whatever the caller held before.
func (i *Ideator) Ideate(ctx context.Context, profile brand.Profile, goal brand.Goal, steering string) ([]brand.Idea, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: encode profile: %v", ErrIdeation, err)
	}

	contextLine := steering
	if contextLine == "" {
		contextLine = fmt.Sprintf("Generate %s campaign ideas for the UK market.", goal)
	}

	userPrompt := fmt.Sprintf(`Based on this Brand DNA: %s and the goal of %s, generate 3 campaign theme ideas.
Context: %s
Advanced Tone: %s
Return an array of objects: [{ "theme": "string", "angle": "string", "hook": "string" }]`,
		profileJSON, goal, contextLine, profile.Identity.ToneV.Prompt())

	raw, err := i.AI.GenerateJSON(ctx, ideateSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdeation, err)
	}

	var ideas []brand.Idea
	if err := json.Unmarshal([]byte(raw), &ideas); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrIdeation, err)
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("%w: empty idea list", ErrIdeation)
	}
	return ideas, nil
}
