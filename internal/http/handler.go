package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/apperror"
	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/product"
)

// EventPublisher receives best-effort notifications after successful writes.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, meta events.EventMeta, p product.Product) error
	PublishProductUpdated(ctx context.Context, meta events.EventMeta, p product.Product) error
	PublishProductDeleted(ctx context.Context, meta events.EventMeta, productID int64) error
}

type Handler struct {
	repo     product.Repository
	events   EventPublisher
	logger   *zap.Logger
	validate *validator.Validate
}

type Option func(*Handler)

func WithEvents(p EventPublisher) Option {
	return func(h *Handler) {
		if p != nil {
			h.events = p
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(repo product.Repository, opts ...Option) *Handler {
	h := &Handler{
		repo:     repo,
		events:   events.NopPublisher{},
		logger:   zap.NewNop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "PONG"})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		h.writeDatabaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct answers 201 with no body. The new id is logged and published
// but not returned, which existing clients rely on.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	id, err := h.repo.Create(r.Context(), in)
	if err != nil {
		h.writeDatabaseError(w, r, err)
		return
	}

	h.logger.Info("product created", zap.Int64("id_product", id), zap.String("request_id", chimw.GetReqID(r.Context())))
	h.publish(r, "created", func(ctx context.Context, meta events.EventMeta) error {
		return h.events.PublishProductCreated(ctx, meta, fromInput(id, in))
	})

	w.WriteHeader(http.StatusCreated)
}

// GetProduct has no 404 path: a missing row surfaces as the generic database error.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeDatabaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProduct answers 200 whether or not a row matched.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	n, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		h.writeDatabaseError(w, r, err)
		return
	}

	if n > 0 {
		h.publish(r, "updated", func(ctx context.Context, meta events.EventMeta) error {
			return h.events.PublishProductUpdated(ctx, meta, fromInput(int64(id), in))
		})
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteProduct answers 204 whether or not a row matched.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	n, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.writeDatabaseError(w, r, err)
		return
	}

	if n > 0 {
		h.publish(r, "deleted", func(ctx context.Context, meta events.EventMeta) error {
			return h.events.PublishProductDeleted(ctx, meta, int64(id))
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

// productRequest uses pointers so validator can tell a missing field from a zero value.
type productRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Quantity    *int32   `json:"qty" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Description *string  `json:"description"`
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (product.Input, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return product.Input{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return product.Input{}, false
	}
	return product.Input{
		Name:        *req.Name,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
		Description: req.Description,
	}, true
}

// productID rejects ids that do not fit in uint32 as an unknown route.
func productID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return uint32(id), true
}

func (h *Handler) writeDatabaseError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := apperror.FromDatabase(err)
	h.logger.Error("database error",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", chimw.GetReqID(r.Context())),
	)
	writeJSON(w, status, body)
}

// publish detaches from the request context so a client hang-up does not
// abort an event for a write that already committed.
func (h *Handler) publish(r *http.Request, action string, fn func(context.Context, events.EventMeta) error) {
	meta := events.EventMeta{CorrelationID: chimw.GetReqID(r.Context())}
	if err := fn(context.WithoutCancel(r.Context()), meta); err != nil {
		h.logger.Warn("publish product event", zap.String("action", action), zap.Error(err))
	}
}

func fromInput(id int64, in product.Input) product.Product {
	return product.Product{
		ID:          id,
		Name:        in.Name,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Description: in.Description,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
