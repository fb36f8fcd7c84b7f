package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vndigital/sitehub/internal/cache"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/domain/service"
)

const servicesListCacheKey = "services:list"

type ServiceStore interface {
	Create(ctx context.Context, req service.CreateServiceRequest) (service.Service, error)
	List(ctx context.Context) ([]service.Service, error)
	GetByID(ctx context.Context, id int) (service.Service, error)
	Update(ctx context.Context, id int, req service.UpdateServiceRequest) (service.Service, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServicesHandler struct {
	repo  ServiceStore
	cache *cache.Cache
}

func NewServicesHandler(repo ServiceStore, c *cache.Cache) *ServicesHandler {
	return &ServicesHandler{repo: repo, cache: c}
}

func (h *ServicesHandler) ListServices(ctx *gin.Context) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(servicesListCacheKey); ok {
			ctx.JSON(http.StatusOK, cached)
			return
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	services, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list services")
		return
	}

	if h.cache != nil {
		h.cache.Set(servicesListCacheKey, services)
	}

	ctx.JSON(http.StatusOK, services)
}

func (h *ServicesHandler) GetServiceByID(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Service not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			RespondNotFound(ctx, "Service not found")
			return
		}

		RespondInternal(ctx, "Could not fetch service")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *ServicesHandler) CreateService(ctx *gin.Context) {
	var req service.CreateServiceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create service")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, s)
}

func (h *ServicesHandler) UpdateService(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Service not found")
		return
	}

	var req service.UpdateServiceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			RespondNotFound(ctx, "Service not found")
			return
		}

		RespondInternal(ctx, "Could not update service")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, s)
}

func (h *ServicesHandler) DeleteService(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Service not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	deleted, err := h.repo.Delete(cctx, id)

	if err != nil {
		RespondInternal(ctx, "Could not delete service")
		return
	}

	if !deleted {
		RespondNotFound(ctx, "Service not found")
		return
	}

	h.invalidate()

	ctx.Status(http.StatusNoContent)
}

func (h *ServicesHandler) invalidate() {
	if h.cache != nil {
		h.cache.Delete(servicesListCacheKey)
	}
}

// parseID reads the :id route param. A non-numeric id can never match a
// record, so callers treat it as not found.
func parseID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))

	if err != nil {
		return 0, false
	}

	return id, true
}
