// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"formpress/internal/styling"
)

// Styles groups the per-form styling endpoints: serving generated CSS,
// reading and writing token overrides, resets, and catalog introspection
// for the editor UI.
type Styles struct {
	service  *styling.Service
	cacheTTL time.Duration
}

// NewStyles creates a new Styles handler group. cacheTTL drives the
// public Cache-Control lifetime on the CSS endpoint, matching the
// in-process stylesheet cache.
func NewStyles(service *styling.Service, cacheTTL time.Duration) *Styles {
	return &Styles{service: service, cacheTTL: cacheTTL}
}

// formIDParam parses the {id} route parameter. A malformed UUID can never
// reference a form, so it reports not-found rather than bad-request.
func formIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// CSS serves the generated stylesheet for a form.
// GET /forms/{id}/css?mode=legacy|tokens (default tokens).
func (h *Styles) CSS(w http.ResponseWriter, r *http.Request) {
	formID, ok := formIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	catalog, err := styling.ParseCatalog(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "mode must be legacy or tokens")
		return
	}

	css, err := h.service.Stylesheet(r.Context(), formID, catalog)
	if err != nil {
		writeStylingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	w.Write([]byte(css))
}

// Get returns the resolved tokens map for a form.
// GET /forms/{id}/styles.
func (h *Styles) Get(w http.ResponseWriter, r *http.Request) {
	formID, ok := formIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	tokens, err := h.service.EffectiveStyles(formID, styling.CatalogTokens)
	if err != nil {
		writeStylingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tokens": tokens})
}

// updateStylesRequest is the PUT /forms/{id}/styles body.
type updateStylesRequest struct {
	Tokens map[string]string `json:"tokens"`
}

// Update applies a batch of token overrides to a form.
// PUT /forms/{id}/styles.
func (h *Styles) Update(w http.ResponseWriter, r *http.Request) {
	formID, ok := formIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	var req updateStylesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}
	if msg := validateStyleUpdates(req.Tokens); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.service.UpdateOverrides(r.Context(), formID, styling.CatalogTokens, req.Tokens); err != nil {
		writeStylingError(w, err)
		return
	}

	writeSuccess(w)
}

// Reset restores a form's styling to defaults: overrides in both catalogs
// are cleared, then the tokens catalog is re-initialized from its
// defaults. The legacy catalog intentionally stays empty after a reset:
// it is being phased out, and a reset is the migration moment.
// POST /forms/{id}/styles/reset.
func (h *Styles) Reset(w http.ResponseWriter, r *http.Request) {
	formID, ok := formIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	ctx := r.Context()

	if err := h.service.ResetOverrides(ctx, formID, styling.CatalogLegacy); err != nil {
		writeStylingError(w, err)
		return
	}
	if err := h.service.ResetOverrides(ctx, formID, styling.CatalogTokens); err != nil {
		writeStylingError(w, err)
		return
	}
	if err := h.service.InitializeOverrides(ctx, formID, styling.CatalogTokens); err != nil {
		writeStylingError(w, err)
		return
	}

	writeSuccess(w)
}

// Summary reports a form's customization state per category.
// GET /forms/{id}/styles/summary?mode=legacy|tokens (default tokens).
func (h *Styles) Summary(w http.ResponseWriter, r *http.Request) {
	formID, ok := formIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	catalog, err := styling.ParseCatalog(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "mode must be legacy or tokens")
		return
	}

	summary, err := h.service.StylingSummary(formID, catalog)
	if err != nil {
		writeStylingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Variables exposes the legacy catalog for editor tooling.
// GET /styling/variables.
func (h *Styles) Variables(w http.ResponseWriter, r *http.Request) {
	h.catalogListing(w, styling.CatalogLegacy, "variables", "variablesByCategory")
}

// Tokens exposes the tokens catalog for editor tooling.
// GET /styling/tokens.
func (h *Styles) Tokens(w http.ResponseWriter, r *http.Request) {
	h.catalogListing(w, styling.CatalogTokens, "tokens", "tokensByCategory")
}

// catalogListing writes the flat and category-grouped views of a catalog.
// Non-editable palette constants are included for display; editors filter
// by is_user_editable before offering edits.
func (h *Styles) catalogListing(w http.ResponseWriter, catalog styling.Catalog, listKey, groupKey string) {
	defaults, err := h.service.AvailableDefaults(catalog)
	if err != nil {
		writeStylingError(w, err)
		return
	}
	grouped, err := h.service.DefaultsByCategory(catalog)
	if err != nil {
		writeStylingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		listKey:  defaults,
		groupKey: grouped,
	})
}
