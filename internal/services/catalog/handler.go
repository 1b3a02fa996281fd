// Package catalog serves the menu catalog over HTTP.
package catalog

import (
	"context"
	"errors"
	"net/http"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/services/web"
	"restaurant-menu/internal/validation"
)

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	catalog *menu.Catalog
	logger  *logger.Logger
}

func NewHandler(catalog *menu.Catalog, log *logger.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  log,
	}
}

// Register adds the catalog routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /menu", web.WithLogging(h.logger, "/menu", h.GetMenu))
	mux.HandleFunc("GET /menu/{category}", web.WithLogging(h.logger, "/menu/{category}", h.GetCategory))
	mux.HandleFunc("POST /menu/{category}/items", web.WithLogging(h.logger, "/menu/{category}/items", h.AddItem))
	mux.HandleFunc("PATCH /menu/{category}/items/{name}", web.WithLogging(h.logger, "/menu/{category}/items/{name}", h.UpdateItem))
	mux.HandleFunc("DELETE /menu/{category}/items/{name}", web.WithLogging(h.logger, "/menu/{category}/items/{name}", h.DeleteItem))
}

// GetMenu handles GET /menu
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.catalog.Snapshot())
}

// GetCategory handles GET /menu/{category}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)
	category := r.PathValue("category")

	items := h.catalog.Items(category)
	if items == nil {
		web.WriteError(w, http.StatusNotFound, "category not found", requestID)
		return
	}
	h.writeJSON(w, r, http.StatusOK, items)
}

// AddItem handles POST /menu/{category}/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)
	category := r.PathValue("category")

	var req models.MenuItemRequest
	if err := web.DecodeJSON(r, &req, true); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}
	if err := validation.ValidateCategory(category); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}
	if err := validation.ValidateMenuItemRequest(&req); err != nil {
		h.logger.Error("validation_failed", "Menu item validation failed", requestID, err, map[string]interface{}{
			"category": category,
		})
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	entry, err := req.Entry()
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	if err := h.catalog.AddItem(context.WithoutCancel(r.Context()), entry, category); err != nil {
		h.storageFailed(w, requestID, err, category)
		return
	}

	h.logger.Info("menu_item_added", "Menu item added", requestID, map[string]interface{}{
		"category": category,
		"name":     req.Name,
		"kind":     req.Kind,
	})
	h.writeJSON(w, r, http.StatusCreated, entry.Serialize())
}

// UpdateItem handles PATCH /menu/{category}/items/{name}. The body is merged
// into the first entry with that name.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)
	category := r.PathValue("category")
	name := r.PathValue("name")

	var patch models.Record
	if err := web.DecodeJSON(r, &patch, false); err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}
	if len(patch) == 0 {
		web.WriteError(w, http.StatusBadRequest, "update body cannot be empty", requestID)
		return
	}

	record, found, err := h.catalog.PatchItem(context.WithoutCancel(r.Context()), category, name, patch)
	if err != nil {
		h.storageFailed(w, requestID, err, category)
		return
	}
	if !found {
		web.WriteError(w, http.StatusNotFound, "menu item not found", requestID)
		return
	}
	h.writeJSON(w, r, http.StatusOK, record)
}

// DeleteItem handles DELETE /menu/{category}/items/{name}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)
	category := r.PathValue("category")
	name := r.PathValue("name")

	if err := h.catalog.DeleteItem(context.WithoutCancel(r.Context()), category, name); err != nil {
		h.storageFailed(w, requestID, err, category)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) storageFailed(w http.ResponseWriter, requestID string, err error, category string) {
	h.logger.Error("catalog_save_failed", "Failed to persist menu change", requestID, err, map[string]interface{}{
		"category": category,
	})

	var storageErr *menu.StorageError
	if errors.As(err, &storageErr) && storageErr.Op == menu.OpEncode {
		web.WriteError(w, http.StatusUnprocessableEntity, "menu item cannot be stored", requestID)
		return
	}
	if errors.As(err, &storageErr) {
		web.WriteError(w, http.StatusServiceUnavailable, "menu storage unavailable", requestID)
		return
	}
	web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) {
	if err := web.WriteJSON(w, statusCode, v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", web.RequestID(r), err, nil)
	}
}
