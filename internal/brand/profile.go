// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brand defines the domain model for the studio: the brand profile
// derived from a business description, the tone controls that steer copy
// generation, and the per-channel marketing assets built from it.
package brand

import "fmt"

// Tone axis names accepted by Profile.WithTone and the tone form handler.
const (
	ToneFormality  = "formality"
	ToneEnthusiasm = "enthusiasm"
	ToneHumour     = "humour"
)

// ToneVector is the three-axis dial steering generated copy. Each axis is
// bounded to [0,100]: 0 is casual/professional/serious, 100 is
// formal/enthusiastic/witty.
type ToneVector struct {
	Formality  int `json:"formality"`
	Enthusiasm int `json:"enthusiasm"`
	Humour     int `json:"humour"`
}

// DefaultTone is substituted when the extraction response omits the tone
// vector, so a profile is never usable without one.
var DefaultTone = ToneVector{Formality: 50, Enthusiasm: 50, Humour: 20}

// Clamp bounds every axis to [0,100] and returns the result.
func (t ToneVector) Clamp() ToneVector {
	t.Formality = clamp(t.Formality)
	t.Enthusiasm = clamp(t.Enthusiasm)
	t.Humour = clamp(t.Humour)
	return t
}

// IsZero reports whether the vector carries no signal at all, which is how
// an omitted JSON field decodes.
func (t ToneVector) IsZero() bool {
	return t.Formality == 0 && t.Enthusiasm == 0 && t.Humour == 0
}

// Prompt renders the vector in the form every generation request embeds.
func (t ToneVector) Prompt() string {
	return fmt.Sprintf("Formality: %d/100, Enthusiasm: %d/100, Humour: %d/100",
		t.Formality, t.Enthusiasm, t.Humour)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Colors is the brand palette as hex strings.
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Identity groups the visual and verbal identity of the brand.
type Identity struct {
	Colors Colors     `json:"colors"`
	Fonts  string     `json:"fonts"`
	Tone   string     `json:"tone"`
	ToneV  ToneVector `json:"toneSettings"`
}

// VisualStyle captures how generated imagery should look.
type VisualStyle struct {
	ImageStyle       string `json:"imageStyle"`
	ConsistencyRules string `json:"consistencyRules"`
}

// Contact holds the brand's public contact details.
type Contact struct {
	Website string `json:"website"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Messaging groups the brand's value proposition and calls-to-action.
type Messaging struct {
	ValueProp string   `json:"valueProp"`
	CTAs      []string `json:"ctas"`
	Contact   Contact  `json:"contact"`
}

// Profile is the structured brand description extracted once per session
// from free-text input. It is treated as a value: tone edits go through
// WithTone, which returns a new Profile rather than mutating in place.
type Profile struct {
	Identity    Identity    `json:"identity"`
	VisualStyle VisualStyle `json:"visualStyle"`
	Messaging   Messaging   `json:"messaging"`
	Keywords    []string    `json:"keywords"`
}

// Normalize fills in the default tone vector when the extraction response
// omitted it and clamps whatever was supplied. Every profile passes through
// here before it is considered usable.
func (p Profile) Normalize() Profile {
	if p.Identity.ToneV.IsZero() {
		p.Identity.ToneV = DefaultTone
	}
	p.Identity.ToneV = p.Identity.ToneV.Clamp()
	return p
}

// WithTone returns a copy of the profile with one tone axis replaced.
// The value is clamped to [0,100]; an unknown axis name is ignored.
func (p Profile) WithTone(axis string, value int) Profile {
	value = clamp(value)
	switch axis {
	case ToneFormality:
		p.Identity.ToneV.Formality = value
	case ToneEnthusiasm:
		p.Identity.ToneV.Enthusiasm = value
	case ToneHumour:
		p.Identity.ToneV.Humour = value
	}
	return p
}
