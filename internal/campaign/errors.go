// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package campaign implements the studio's generation flows: brand
// extraction, campaign ideation, per-channel asset drafting, and
// image-to-video animation, coordinated by the Workspace state machine.
package campaign

import "errors"

// Every generation failure is classified into one of these sentinels at
// the client boundary. Handlers match with errors.Is and surface the
// matching user-facing message; no flow retries automatically.
var (
	// ErrExtraction covers transport and parse failures while deriving a
	// brand profile from the business description.
	ErrExtraction = errors.New("brand analysis failed")

	// ErrIdeation covers failures while fetching campaign ideas, including
	// a reply that decodes to an empty list.
	ErrIdeation = errors.New("idea generation failed")

	// ErrDrafting covers any failure in the four-channel asset batch; a
	// single channel failing discards the whole batch.
	ErrDrafting = errors.New("asset drafting failed")

	// ErrAnimation covers submission, polling, timeout, and download
	// failures in the image-to-video flow.
	ErrAnimation = errors.New("animation failed")

	// ErrScheduleDate rejects a schedule confirmation without a concrete
	// date and time.
	ErrScheduleDate = errors.New("a date and time is required to schedule")
)
