// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandforge/internal/middleware"
)

// ServeMedia streams a generated blob to its owning session. Blobs are
// scoped to the session that generated them; anything else is a 404, the
// same response as a missing blob so IDs cannot be probed.
func (s *Studio) ServeMedia(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.NotFound(w, r)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	blob, err := s.blobs.Get(id)
	if err != nil || blob.Owner != sess.ID {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	// Session-scoped content; never let a shared cache hold it.
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(blob.Data)
}
