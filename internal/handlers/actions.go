// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandforge/internal/brand"
	"brandforge/internal/campaign"
	"brandforge/internal/render"
)

// --- Campaign Actions ---
//
// Every action mutates the session's workspace and responds with the page
// for the resulting state. HTMX requests receive the content fragment only,
// so each POST swaps the whole studio area in one round trip.

// Extract runs brand analysis on the intake description and moves the
// workspace to goal selection.
func (s *Studio) Extract(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if msg := validateDescription(description); msg != "" {
		s.renderError(w, r, ws, msg)
		return
	}
	if !s.checkPromptSafety(w, r, ws, description) {
		return
	}

	if err := ws.Extract(r.Context(), description); err != nil {
		slog.Error("brand extraction failed", "error", err)
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// SelectGoal picks a campaign goal and generates the first idea batch.
// The workspace moves to idea listing even when ideation fails, so the
// empty state offers a retry.
func (s *Studio) SelectGoal(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	goal := brand.Goal(r.FormValue("goal"))
	if err := ws.SelectGoal(r.Context(), goal); err != nil {
		slog.Error("goal selection failed", "goal", goal, "error", err)
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// RefreshIdeas regenerates the idea batch, steered by an optional prompt
// and the profile's current tone vector.
func (s *Studio) RefreshIdeas(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	steering := strings.TrimSpace(r.FormValue("prompt"))
	if msg := validateSteering(steering); msg != "" {
		s.renderStateData(w, r, ws, map[string]any{"Steering": steering},
			render.Flash{Type: "error", Message: msg})
		return
	}
	if steering != "" && !s.checkPromptSafety(w, r, ws, steering) {
		return
	}

	if err := ws.RefreshIdeas(r.Context(), steering); err != nil {
		slog.Error("idea refresh failed", "error", err)
		s.renderStateData(w, r, ws, map[string]any{"Steering": steering},
			render.Flash{Type: "error", Message: friendly(err)})
		return
	}
	s.renderStateData(w, r, ws, map[string]any{"Steering": steering})
}

// SelectIdea commits to one idea and drafts the full per-channel asset
// batch. The previous batch is only replaced when drafting succeeds.
func (s *Studio) SelectIdea(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		s.renderError(w, r, ws, "Unknown idea.")
		return
	}

	if err := ws.SelectIdea(r.Context(), index); err != nil {
		slog.Error("idea selection failed", "index", index, "error", err)
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// EditAsset applies the copy fields from the editor form to one asset.
func (s *Studio) EditAsset(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, ws, "Unknown asset.")
		return
	}

	fields := map[string]string{
		"headline": r.FormValue("headline"),
		"body":     r.FormValue("body"),
		"caption":  r.FormValue("caption"),
	}
	if msg := validateCopy(fields); msg != "" {
		s.renderError(w, r, ws, msg)
		return
	}

	for field, value := range fields {
		if err := ws.EditAsset(id, field, value); err != nil {
			s.renderError(w, r, ws, friendly(err))
			return
		}
	}
	s.renderState(w, r, ws)
}

// SetTone updates the profile's tone vector from the editor sliders.
// Tone steers subsequent generations; existing copy is untouched.
func (s *Studio) SetTone(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	for _, axis := range []string{brand.ToneFormality, brand.ToneEnthusiasm, brand.ToneHumour} {
		raw := r.FormValue(axis)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			s.renderError(w, r, ws, "Tone values must be numbers between 0 and 100.")
			return
		}
		if err := ws.SetTone(axis, value); err != nil {
			s.renderError(w, r, ws, friendly(err))
			return
		}
	}
	s.renderState(w, r, ws)
}

// SetChannel switches the editor's active channel tab.
func (s *Studio) SetChannel(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	ch := brand.Channel(r.FormValue("channel"))
	if err := ws.SetActiveChannel(ch); err != nil {
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// Schedule records a publish time on one asset. The schedule is advisory,
// nothing is published automatically.
func (s *Studio) Schedule(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, ws, "Unknown asset.")
		return
	}

	when, err := parseScheduleTime(r.FormValue("at"))
	if err != nil {
		s.renderError(w, r, ws, "That date and time could not be read.")
		return
	}

	if err := ws.Schedule(id, when); err != nil {
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// Animate renders the asset's image into a short video in the chosen
// motion style. This request blocks while the render polls, which can take
// minutes; the server's write timeout is sized for it.
func (s *Studio) Animate(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, ws, "Unknown asset.")
		return
	}

	style := r.FormValue("style")
	if err := ws.Animate(r.Context(), id, style); err != nil {
		slog.Error("animation failed", "asset", id, "style", style, "error", err)
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// Back returns from the editor to the idea listing, discarding the drafted
// batch but keeping the idea list.
func (s *Studio) Back(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	if err := ws.Back(); err != nil {
		s.renderError(w, r, ws, friendly(err))
		return
	}
	s.renderState(w, r, ws)
}

// Reset ends the session entirely: the workspace and its media are
// discarded, the cookie is expired, and the next request starts a fresh
// session. The intake page is rendered from the now-empty workspace.
func (s *Studio) Reset(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	s.sessions.Destroy(w, r)
	s.renderState(w, r, ws)
}

// renderStateData is renderState with extra page data merged in.
func (s *Studio) renderStateData(w http.ResponseWriter, r *http.Request, ws *campaign.Workspace, extra map[string]any, flashes ...render.Flash) {
	view := ws.Snapshot()
	page := render.PageForState(view.State)

	data := map[string]any{
		"Goals":  brand.Goals,
		"Styles": brand.AnimationStyles,
	}
	for k, v := range extra {
		data[k] = v
	}

	s.renderer.Page(w, r, page, &render.PageData{
		Title:   pageTitles[page],
		View:    view,
		Data:    data,
		Flashes: flashes,
	})
}

// friendly maps workspace and generation errors to user-facing messages.
func friendly(err error) string {
	switch {
	case errors.Is(err, campaign.ErrBusy):
		return "A generation is already running. Give it a moment."
	case errors.Is(err, campaign.ErrStale):
		return "The campaign changed while generating, so that result was discarded."
	case errors.Is(err, campaign.ErrExtraction):
		return "Brand analysis failed. Check your description and try again."
	case errors.Is(err, campaign.ErrIdeation):
		return "Idea generation failed. Try refreshing."
	case errors.Is(err, campaign.ErrDrafting):
		return "Asset drafting failed. Nothing was changed; try again."
	case errors.Is(err, campaign.ErrAnimation):
		return "Animation failed or timed out. Your image is untouched."
	case errors.Is(err, campaign.ErrScheduleDate):
		return "A date and time is required to schedule."
	default:
		return "That didn't work: " + err.Error()
	}
}

// parseScheduleTime reads the editor's datetime-local value. An empty value
// parses to the zero time, which Schedule rejects with ErrScheduleDate.
func parseScheduleTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
}
