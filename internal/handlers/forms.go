// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"formpress/internal/models"
	"formpress/internal/slug"
	"formpress/internal/store"
	"formpress/internal/styling"
)

// Forms groups the form lifecycle endpoints. The field schema is opaque
// JSON owned by the editor UI; this layer only bounds its size.
type Forms struct {
	forms   *store.FormStore
	styling *styling.Service
}

// NewForms creates a new Forms handler group.
func NewForms(forms *store.FormStore, stylingService *styling.Service) *Forms {
	return &Forms{forms: forms, styling: stylingService}
}

// formRequest is the create/update body.
type formRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

// Create creates a form and materializes its initial token overrides from
// the editable defaults, so its style set evolves independently from day
// one. POST /forms.
func (h *Forms) Create(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}
	if msg := validateForm(req.Name, desc, len(req.Schema)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	form := &models.Form{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Schema:      req.Schema,
	}
	form.Slug = h.uniqueSlug(form.Name)

	created, err := h.forms.Create(form)
	if err != nil {
		slog.Error("create form failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Styling initialization failure must not lose the created form; the
	// overrides materialize lazily on the first styling operation instead.
	if err := h.styling.InitializeOverrides(r.Context(), created.ID, styling.CatalogTokens); err != nil {
		slog.Warn("initial style overrides failed", "form_id", created.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns all forms, newest first. GET /forms.
func (h *Forms) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.forms.List()
	if err != nil {
		slog.Error("list forms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if forms == nil {
		forms = []models.Form{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"forms": forms})
}

// Get returns one form. GET /forms/{id}.
func (h *Forms) Get(w http.ResponseWriter, r *http.Request) {
	form, ok := h.loadForm(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Update modifies a form's name, description, and schema. The slug is
// stable after creation: published embed URLs must keep working.
// PUT /forms/{id}.
func (h *Forms) Update(w http.ResponseWriter, r *http.Request) {
	form, ok := h.loadForm(w, r)
	if !ok {
		return
	}

	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}
	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}
	if msg := validateForm(req.Name, desc, len(req.Schema)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.forms.Update(form.ID, strings.TrimSpace(req.Name), req.Description, req.Schema); err != nil {
		slog.Error("update form failed", "form_id", form.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeSuccess(w)
}

// Publish marks a form as published. POST /forms/{id}/publish.
func (h *Forms) Publish(w http.ResponseWriter, r *http.Request) {
	form, ok := h.loadForm(w, r)
	if !ok {
		return
	}
	if err := h.forms.Publish(form.ID); err != nil {
		slog.Error("publish form failed", "form_id", form.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeSuccess(w)
}

// Delete soft-deletes a form, cascades to its style overrides, and drops
// its cached stylesheets. DELETE /forms/{id}.
func (h *Forms) Delete(w http.ResponseWriter, r *http.Request) {
	form, ok := h.loadForm(w, r)
	if !ok {
		return
	}
	if err := h.forms.SoftDelete(form.ID); err != nil {
		slog.Error("delete form failed", "form_id", form.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.styling.InvalidateForm(r.Context(), form.ID)
	writeSuccess(w)
}

// loadForm resolves the {id} route parameter to a form, writing the
// not-found envelope on failure.
func (h *Forms) loadForm(w http.ResponseWriter, r *http.Request) (*models.Form, bool) {
	formID, ok := formIDParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found")
		return nil, false
	}
	form, err := h.forms.FindByID(formID)
	if err != nil {
		slog.Error("find form failed", "form_id", formID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return nil, false
	}
	return form, true
}

// uniqueSlug generates a slug from the name, suffixing a counter when the
// slug is already taken.
func (h *Forms) uniqueSlug(name string) string {
	base := slug.Generate(name)
	if base == "" {
		base = "form"
	}

	candidate := base
	for i := 2; ; i++ {
		existing, err := h.forms.FindBySlug(candidate)
		if err != nil || existing == nil {
			return candidate
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
