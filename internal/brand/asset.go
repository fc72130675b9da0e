// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import (
	"time"

	"github.com/google/uuid"
)

// Goal is the marketing objective selected before idea generation.
type Goal string

const (
	GoalAwareness    Goal = "Awareness"
	GoalLeadGen      Goal = "Lead Generation"
	GoalPromotional  Goal = "Promotional/Sales"
	GoalStorytelling Goal = "Brand Storytelling"
)

// Goals lists every selectable campaign goal in display order.
var Goals = []Goal{GoalAwareness, GoalLeadGen, GoalPromotional, GoalStorytelling}

// Valid reports whether g is one of the fixed campaign goals.
func (g Goal) Valid() bool {
	for _, known := range Goals {
		if g == known {
			return true
		}
	}
	return false
}

// Idea is one candidate campaign direction returned by ideation.
type Idea struct {
	Theme string `json:"theme"`
	Angle string `json:"angle"`
	Hook  string `json:"hook"`
}

// Channel is a distribution destination with a conventional aspect ratio.
type Channel string

const (
	ChannelLinkedIn  Channel = "LinkedIn"
	ChannelInstagram Channel = "Instagram"
	ChannelFacebook  Channel = "Facebook"
	ChannelTikTok    Channel = "TikTok"
	ChannelYouTube   Channel = "YouTube"
)

// DraftChannels is the fixed fan-out set for asset drafting, in the order
// the sequential batch runs.
var DraftChannels = []Channel{ChannelLinkedIn, ChannelInstagram, ChannelFacebook, ChannelTikTok}

// AspectRatio returns the channel's conventional image ratio. Instagram is
// square; every other channel renders widescreen.
func (c Channel) AspectRatio() string {
	if c == ChannelInstagram {
		return "1:1"
	}
	return "16:9"
}

// Asset is one channel-specific piece of generated content. Identity is
// stable per channel for the lifetime of the selected idea; a new idea
// replaces the whole batch.
type Asset struct {
	ID          uuid.UUID  `json:"id"`
	Channel     Channel    `json:"channel"`
	Headline    string     `json:"headline"`
	Body        string     `json:"body"`
	Caption     string     `json:"caption"`
	ImageID     uuid.UUID  `json:"image_id,omitempty"`
	VideoID     uuid.UUID  `json:"video_id,omitempty"`
	Ratio       string     `json:"ratio"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// HasImage reports whether a rendered image is attached. Animation is only
// possible against an existing image.
func (a *Asset) HasImage() bool {
	return a.ImageID != uuid.Nil
}

// AnimationStyle pairs a named motion style with the descriptive phrase
// embedded in the video prompt.
type AnimationStyle struct {
	Name   string
	Motion string
}

// AnimationStyles is the fixed style set offered in the editor.
var AnimationStyles = []AnimationStyle{
	{Name: "Cinematic", Motion: "subtle pans and dramatic lighting"},
	{Name: "Corporate", Motion: "clean, professional, and smooth"},
	{Name: "Playful", Motion: "fun, energetic, and bouncing"},
	{Name: "Minimalist", Motion: "simple, clean motion design"},
	{Name: "High Energy", Motion: "fast-paced and rhythmic"},
}

// StyleByName looks up an animation style; it falls back to the first style
// when the name is unknown so the animate flow always has a usable style.
func StyleByName(name string) AnimationStyle {
	for _, s := range AnimationStyles {
		if s.Name == name {
			return s
		}
	}
	return AnimationStyles[0]
}
