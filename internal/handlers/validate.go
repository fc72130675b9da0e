package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for studio form fields.
const (
	minDescriptionLen = 20
	maxDescriptionLen = 20_000
	maxSteeringLen    = 500
	maxHeadlineLen    = 300
	maxBodyLen        = 5_000
	maxCaptionLen     = 2_000
)

// validateDescription checks the intake description and returns the first
// error found.
func validateDescription(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return "Please describe your business first."
	}
	if utf8.RuneCountInString(description) < minDescriptionLen {
		return "That's a little short. A few sentences give much better results."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 20,000 characters)."
	}
	return ""
}

// validateSteering checks the optional idea-refresh steering prompt.
func validateSteering(prompt string) string {
	if utf8.RuneCountInString(prompt) > maxSteeringLen {
		return "Steering prompt is too long (max 500 characters)."
	}
	return ""
}

// validateCopy checks the editable copy fields of an asset.
func validateCopy(fields map[string]string) string {
	if utf8.RuneCountInString(fields["headline"]) > maxHeadlineLen {
		return "Headline is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(fields["body"]) > maxBodyLen {
		return "Body is too long (max 5,000 characters)."
	}
	if utf8.RuneCountInString(fields["caption"]) > maxCaptionLen {
		return "Caption is too long (max 2,000 characters)."
	}
	return ""
}
