// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the BrandForge studio.
// Handlers are grouped by concern (studio pages, campaign actions, media)
// and receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"brandforge/internal/ai"
	"brandforge/internal/brand"
	"brandforge/internal/campaign"
	"brandforge/internal/media"
	"brandforge/internal/middleware"
	"brandforge/internal/render"
	"brandforge/internal/session"
)

// Studio groups all studio HTTP handlers and their dependencies.
type Studio struct {
	renderer   *render.Renderer
	aiRegistry *ai.Registry
	blobs      *media.Store
	sessions   *session.Store
}

// NewStudio creates a new Studio handler group with the given dependencies.
func NewStudio(renderer *render.Renderer, aiRegistry *ai.Registry, blobs *media.Store, sessions *session.Store) *Studio {
	return &Studio{
		renderer:   renderer,
		aiRegistry: aiRegistry,
		blobs:      blobs,
		sessions:   sessions,
	}
}

// pageTitles maps each flow state's page template to its <title>.
var pageTitles = map[string]string{
	"intake": "Describe your brand",
	"goals":  "Pick a campaign goal",
	"ideas":  "Campaign directions",
	"editor": "Campaign editor",
}

// workspace pulls the session's campaign workspace from the request context.
// The session middleware guarantees a session on every studio route.
func workspace(r *http.Request) *campaign.Workspace {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return nil
	}
	return sess.Workspace
}

// Home renders the page matching the workspace's current flow state.
func (s *Studio) Home(w http.ResponseWriter, r *http.Request) {
	ws := workspace(r)
	if ws == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	s.renderState(w, r, ws)
}

// renderState renders the page for the workspace's current state, with any
// flashes. Fragment or full page is decided inside the renderer.
func (s *Studio) renderState(w http.ResponseWriter, r *http.Request, ws *campaign.Workspace, flashes ...render.Flash) {
	view := ws.Snapshot()
	page := render.PageForState(view.State)

	s.renderer.Page(w, r, page, &render.PageData{
		Title: pageTitles[page],
		View:  view,
		Data: map[string]any{
			"Goals":  brand.Goals,
			"Styles": brand.AnimationStyles,
		},
		Flashes: flashes,
	})
}

// renderError re-renders the current state with an inline error banner.
// Generation failures never retry automatically; the user decides.
func (s *Studio) renderError(w http.ResponseWriter, r *http.Request, ws *campaign.Workspace, msg string) {
	s.renderState(w, r, ws, render.Flash{Type: "error", Message: msg})
}

// checkPromptSafety runs user-supplied text through the moderation chain.
// Returns true when the prompt may proceed. Moderation errors fail open,
// providers have their own safety filters.
func (s *Studio) checkPromptSafety(w http.ResponseWriter, r *http.Request, ws *campaign.Workspace, prompt string) bool {
	result, err := s.aiRegistry.CheckPrompt(r.Context(), prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return true
	}

	if result.Safe {
		return true
	}

	categories := strings.Join(result.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)

	s.renderError(w, r, ws, fmt.Sprintf(
		"Your text was flagged for: %s. Please reword it and try again.", categories))
	return false
}

// Health reports service liveness and the active AI provider.
func (s *Studio) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "ok",
		"provider": s.aiRegistry.ActiveName(),
	})
}
