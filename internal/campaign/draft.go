// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandforge/internal/ai"
	"brandforge/internal/brand"
	"brandforge/internal/media"
)

const draftSystemPrompt = `You are a marketing copywriter for the UK market. Reply with valid JSON only, no commentary or markdown.`

// assetCopy is the structured copy reply for one channel.
type assetCopy struct {
	Headline    string `json:"headline"`
	Body        string `json:"body"`
	Caption     string `json:"caption"`
	ImagePrompt string `json:"imagePrompt"`
}

// Drafter builds the per-channel asset batch for a selected idea: copy
// first, then an image render at the channel's aspect ratio, strictly one
// channel at a time in the fixed fan-out order.
type Drafter struct {
	AI    *ai.Registry
	Media *media.Store
}

// Draft produces one asset per channel in brand.DraftChannels. The batch is
// all-or-nothing: any failure discards everything generated so far in this
// attempt, including stored media, and wraps ErrDrafting. A model reply
// without image data is not a failure; the asset gets a neutral placeholder.
func (d *Drafter) Draft(ctx context.Context, owner string, profile brand.Profile, theme string, goal brand.Goal) ([]brand.Asset, error) {
	assets := make([]brand.Asset, 0, len(brand.DraftChannels))
	var created []uuid.UUID

	discard := func() {
		for _, id := range created {
			d.Media.Delete(id)
		}
	}

	for _, ch := range brand.DraftChannels {
		copyText, err := d.generateCopy(ctx, profile, theme, ch, goal)
		if err != nil {
			discard()
			return nil, fmt.Errorf("%w: %s copy: %v", ErrDrafting, ch, err)
		}

		ratio := ch.AspectRatio()
		imgBytes, contentType, err := d.AI.GenerateImage(ctx, copyText.ImagePrompt, ratio)
		if err != nil {
			if !errors.Is(err, ai.ErrNoImagePayload) {
				discard()
				return nil, fmt.Errorf("%w: %s image: %v", ErrDrafting, ch, err)
			}
			imgBytes, contentType, err = placeholderPNG(ratio)
			if err != nil {
				discard()
				return nil, fmt.Errorf("%w: %s placeholder: %v", ErrDrafting, ch, err)
			}
		}

		imageID := d.Media.Put(owner, contentType, imgBytes)
		created = append(created, imageID)

		assets = append(assets, brand.Asset{
			ID:       uuid.New(),
			Channel:  ch,
			Headline: copyText.Headline,
			Body:     copyText.Body,
			Caption:  copyText.Caption,
			ImageID:  imageID,
			Ratio:    ratio,
		})
	}

	return assets, nil
}

func (d *Drafter) generateCopy(ctx context.Context, profile brand.Profile, theme string, ch brand.Channel, goal brand.Goal) (assetCopy, error) {
	userPrompt := fmt.Sprintf(`Generate marketing copy for %s based on:
Theme: %s
Campaign Goal: %s
Advanced Tone Settings: %s
Target: UK Audience

Return JSON: { "headline": "string", "body": "string", "caption": "string", "imagePrompt": "string" }`,
		ch, theme, goal, profile.Identity.ToneV.Prompt())

	raw, err := d.AI.GenerateJSON(ctx, draftSystemPrompt, userPrompt)
	if err != nil {
		return assetCopy{}, err
	}

	var c assetCopy
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return assetCopy{}, fmt.Errorf("decode copy: %w", err)
	}
	return c, nil
}
