package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vndigital/sitehub/internal/cache"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/domain/team"
)

const teamListCacheKey = "team:list"

type TeamStore interface {
	Create(ctx context.Context, req team.CreateMemberRequest) (team.Member, error)
	List(ctx context.Context) ([]team.Member, error)
	GetByID(ctx context.Context, id int) (team.Member, error)
	Update(ctx context.Context, id int, req team.UpdateMemberRequest) (team.Member, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type TeamHandler struct {
	repo  TeamStore
	cache *cache.Cache
}

func NewTeamHandler(repo TeamStore, c *cache.Cache) *TeamHandler {
	return &TeamHandler{repo: repo, cache: c}
}

func (h *TeamHandler) ListMembers(ctx *gin.Context) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(teamListCacheKey); ok {
			ctx.JSON(http.StatusOK, cached)
			return
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	members, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list team members")
		return
	}

	if h.cache != nil {
		h.cache.Set(teamListCacheKey, members)
	}

	ctx.JSON(http.StatusOK, members)
}

func (h *TeamHandler) GetMemberByID(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Team member not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			RespondNotFound(ctx, "Team member not found")
			return
		}

		RespondInternal(ctx, "Could not fetch team member")
		return
	}

	ctx.JSON(http.StatusOK, m)
}

func (h *TeamHandler) CreateMember(ctx *gin.Context) {
	var req team.CreateMemberRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create team member")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, m)
}

func (h *TeamHandler) UpdateMember(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Team member not found")
		return
	}

	var req team.UpdateMemberRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			RespondNotFound(ctx, "Team member not found")
			return
		}

		RespondInternal(ctx, "Could not update team member")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, m)
}

func (h *TeamHandler) DeleteMember(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		RespondNotFound(ctx, "Team member not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	deleted, err := h.repo.Delete(cctx, id)

	if err != nil {
		RespondInternal(ctx, "Could not delete team member")
		return
	}

	if !deleted {
		RespondNotFound(ctx, "Team member not found")
		return
	}

	h.invalidate()

	ctx.Status(http.StatusNoContent)
}

func (h *TeamHandler) invalidate() {
	if h.cache != nil {
		h.cache.Delete(teamListCacheKey)
	}
}
