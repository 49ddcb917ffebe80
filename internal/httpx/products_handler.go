package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/jimgas/gas-orders/internal/auth"
	"github.com/jimgas/gas-orders/internal/catalog"
	"github.com/jimgas/gas-orders/internal/redisx"
)

// CatalogStore is what the product handlers need from the catalog repo.
type CatalogStore interface {
	ListActive(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, in catalog.CreateInput) (catalog.Product, error)
	Update(ctx context.Context, id string, in catalog.UpdateInput) (catalog.Product, error)
	Deactivate(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Store CatalogStore
	Redis *redis.Client
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/products", h.create)
		r.Put("/products/{id}", h.update)
		r.Delete("/products/{id}", h.deactivate)
	})
}

// list serves the public catalog, cache-aside over Redis. The database is
// authoritative; a cold or unreachable cache just means a query.
func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if s, err := h.Redis.Get(ctx, redisx.KeyActiveProducts).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	products, err := h.Store.ListActive(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	body, _ := json.Marshal(products)
	_ = h.Redis.Set(ctx, redisx.KeyActiveProducts, body, redisx.TTLProductCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in catalog.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Create(ctx, in)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	h.invalidate(ctx)
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var in catalog.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	h.invalidate(ctx)
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Deactivate(ctx, chi.URLParam(r, "id")); err != nil {
		writeAdminError(w, err)
		return
	}
	h.invalidate(ctx)
	writeJSON(w, http.StatusOK, map[string]string{"message": "product removed from catalog"})
}

func (h *ProductsHandler) invalidate(ctx context.Context) {
	_ = h.Redis.Del(ctx, redisx.KeyActiveProducts).Err()
}
