package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustabee/honey-marketplace/internal/shop/application"
	"github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/auth"
	"github.com/trustabee/honey-marketplace/pkg/httpx"
	"github.com/trustabee/honey-marketplace/pkg/metrics"
)

const (
	roleFarmer = "farmer"
	roleClient = "client"
	roleAdmin  = "admin"
)

var errEmptyCart = errors.New("cart is empty")

type Handler struct {
	log      *slog.Logger
	service  *application.Service
	metrics  *metrics.Metrics
	validate *validator.Validate
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service, m *metrics.Metrics, validate *validator.Validate) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		metrics:  m,
		validate: validate,
		tracer:   otel.Tracer("shop-http"),
	}
}

// Mount registers the shop routes on r. Every route needs authn; checkout
// additionally runs through idem.
func (h *Handler) Mount(r chi.Router, authn, idem func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoles(roleClient))
			r.Get("/cart", h.getCart)
			r.Post("/cart/items", h.addToCart)
			r.Put("/cart/items/{id}", h.updateCartQuantity)
			r.Delete("/cart/items/{id}", h.removeFromCart)
			r.Get("/favorites", h.listFavorites)
			r.Post("/favorites", h.addFavorite)
			r.Delete("/favorites/{id}", h.removeFavorite)
			r.With(idem).Post("/checkout", h.checkout)
			r.Get("/orders", h.listOrders)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoles(roleFarmer))
			r.Get("/farmer/orders", h.farmerOrders)
			r.Get("/farmer/samples", h.farmerSamples)
			r.Post("/farmer/samples", h.submitSample)
			r.Post("/farmer/samples/photo-url", h.photoUploadURL)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoles(roleAdmin))
			r.Get("/admin/samples", h.verificationQueue)
			r.Patch("/admin/samples/{id}/status", h.updateSampleStatus)
		})
	})
}

func (h *Handler) container(r *http.Request) *application.Container {
	p, _ := auth.PrincipalFrom(r.Context())
	return h.service.Session(p.SessionID, application.Owner{UserID: p.UserID, Role: p.Role})
}

func principal(r *http.Request) auth.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.container(r).Browse(f))
}

// parseFilter reads the browse query. type and region accept repeated or
// comma-separated values.
func parseFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	f := domain.ProductFilter{
		Search:  strings.TrimSpace(q.Get("q")),
		Types:   listParam(q["type"]),
		Regions: listParam(q["region"]),
	}
	if v := q.Get("organic"); v != "" {
		organic, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("organic must be a boolean")
		}
		f.OrganicOnly = organic
	}
	for name, dst := range map[string]**decimal.Decimal{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.New(name + " must be a number")
		}
		*dst = &d
	}
	return f, nil
}

func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.container(r).Product(chi.URLParam(r, "id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, application.ErrProductNotFound.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

type productRef struct {
	ProductID string `json:"productId" validate:"required"`
}

type quantityReq struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.container(r).Cart())
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req productRef
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	c := h.container(r)
	p, ok := c.Product(req.ProductID)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, application.ErrProductNotFound.Error())
		return
	}
	c.AddToCart(p)
	h.metrics.CartOperations.WithLabelValues("add").Inc()
	httpx.WriteJSON(w, http.StatusOK, c.Cart())
}

// updateCartQuantity treats a quantity below one as removal.
func (h *Handler) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityReq
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	c := h.container(r)
	c.UpdateCartQuantity(chi.URLParam(r, "id"), *req.Quantity)
	h.metrics.CartOperations.WithLabelValues("update").Inc()
	httpx.WriteJSON(w, http.StatusOK, c.Cart())
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	c := h.container(r)
	c.RemoveFromCart(chi.URLParam(r, "id"))
	h.metrics.CartOperations.WithLabelValues("remove").Inc()
	httpx.WriteJSON(w, http.StatusOK, c.Cart())
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.container(r).Favorites())
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req productRef
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	c := h.container(r)
	p, ok := c.Product(req.ProductID)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, application.ErrProductNotFound.Error())
		return
	}
	c.AddToFavorites(p)
	h.metrics.CartOperations.WithLabelValues("favorite_add").Inc()
	httpx.WriteJSON(w, http.StatusOK, c.Favorites())
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	c := h.container(r)
	c.RemoveFromFavorites(chi.URLParam(r, "id"))
	h.metrics.CartOperations.WithLabelValues("favorite_remove").Inc()
	httpx.WriteJSON(w, http.StatusOK, c.Favorites())
}

type checkoutReq struct {
	FarmerID string `json:"farmerId" validate:"omitempty,max=64"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	var req checkoutReq
	if r.ContentLength != 0 && !httpx.Decode(w, r, h.validate, &req) {
		return
	}

	order, ok, err := h.container(r).Checkout(ctx, req.FarmerID)
	if err != nil {
		h.fail(w, span, err)
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusConflict, errEmptyCart.Error())
		return
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.String("order.total", order.Total.String()))
	httpx.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.container(r).Orders())
}

func (h *Handler) farmerOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "FarmerOrders")
	defer span.End()

	orders, err := h.service.FarmerOrders(ctx, principal(r).UserID)
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) farmerSamples(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "FarmerSamples")
	defer span.End()

	samples, err := h.service.FarmerSamples(ctx, principal(r).UserID)
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, samples)
}

type sampleReq struct {
	HoneyType      string `json:"honeyType" validate:"required,max=64"`
	HarvestDate    string `json:"harvestDate" validate:"required,datetime=2006-01-02"`
	Quantity       string `json:"quantity" validate:"required,max=32"`
	Photo          string `json:"photo" validate:"omitempty,max=512"`
	Address        string `json:"address" validate:"required,max=256"`
	CollectionDate string `json:"collectionDate" validate:"required,datetime=2006-01-02"`
	ContactPref    string `json:"contactPref" validate:"omitempty,max=32"`
}

func (h *Handler) submitSample(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SubmitSample")
	defer span.End()

	var req sampleReq
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	if req.ContactPref == "" {
		req.ContactPref = "SMS"
	}
	smp, err := h.container(r).SubmitSample(ctx, domain.SampleDraft{
		HoneyType:      req.HoneyType,
		HarvestDate:    req.HarvestDate,
		Quantity:       req.Quantity,
		Photo:          req.Photo,
		Address:        req.Address,
		CollectionDate: req.CollectionDate,
		ContactPref:    req.ContactPref,
		FarmerID:       principal(r).UserID,
	})
	if err != nil {
		h.fail(w, span, err)
		return
	}
	span.SetAttributes(attribute.String("sample.id", smp.ID))
	httpx.WriteJSON(w, http.StatusCreated, smp)
}

type photoReq struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
}

func (h *Handler) photoUploadURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PhotoUploadURL")
	defer span.End()

	var req photoReq
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	upload, err := h.service.PhotoUploadURL(ctx, principal(r).UserID, req.ContentType)
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, upload)
}

func (h *Handler) verificationQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "VerificationQueue")
	defer span.End()

	samples, err := h.service.VerificationQueue(ctx, domain.SampleStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, samples)
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateSampleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateSampleStatus")
	defer span.End()

	var req statusReq
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	smp, err := h.service.UpdateSampleStatus(ctx, chi.URLParam(r, "id"), domain.SampleStatus(req.Status))
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, smp)
}

func (h *Handler) fail(w http.ResponseWriter, span trace.Span, err error) {
	switch {
	case errors.Is(err, application.ErrProductNotFound), errors.Is(err, application.ErrSampleNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrInvalidStatus):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrPhotosUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.log.Error("shop request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
