package ratings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mealhub/internal/auth"
	"mealhub/internal/engine"
	"mealhub/internal/household"
	"mealhub/internal/prefs"
	"mealhub/internal/sync"
	"mealhub/pkg/models"
)

type Handler struct {
	Svc        *engine.Service
	Repo       *prefs.Repo
	Households *household.Repo
	Hub        *sync.Hub
}

func NewHandler(svc *engine.Service, repo *prefs.Repo, households *household.Repo, hub *sync.Hub) *Handler {
	return &Handler{Svc: svc, Repo: repo, Households: households, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ratings", h.rate)
	rg.GET("/ratings", h.list)
	rg.DELETE("/ratings/:recipe_id", h.remove)
}

type rateReq struct {
	RecipeID            string   `json:"recipe_id"`
	Value               string   `json:"value"`
	ExcludedIngredients []string `json:"excluded_ingredients"`

	// Optional: rate on behalf of another member of the caller's
	// household (an account-less profile, e.g. a child).
	ProfileID string `json:"profile_id"`
}

func (h *Handler) rate(c *gin.Context) {
	caller := h.callerProfile(c)
	if caller == nil {
		return
	}

	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	recipeID := strings.TrimSpace(req.RecipeID)
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	profileID := caller.ID
	if target := strings.TrimSpace(req.ProfileID); target != "" && target != caller.ID {
		p, err := h.Households.GetProfile(c.Request.Context(), target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
			return
		}
		if p == nil || p.HouseholdID != caller.HouseholdID {
			c.JSON(http.StatusForbidden, gin.H{"error": "profile not in your household"})
			return
		}
		profileID = p.ID
	}

	rating, err := h.Svc.Rate(c.Request.Context(), profileID, recipeID,
		models.RatingValue(strings.ToLower(strings.TrimSpace(req.Value))), req.ExcludedIngredients)
	switch {
	case errors.Is(err, engine.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be one of: hated, disliked, neutral, liked, loved"})
		return
	case errors.Is(err, engine.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rate failed"})
		return
	}

	if h.Hub != nil {
		ev := sync.RatingEvent{
			Type:        "rating.update",
			HouseholdID: caller.HouseholdID,
			ProfileID:   profileID,
			RecipeID:    recipeID,
			Value:       string(rating.Value),
			At:          time.Now().UTC(),
		}
		go h.Hub.Broadcast(ev)
	}

	c.JSON(http.StatusCreated, rating)
}

func (h *Handler) list(c *gin.Context) {
	caller := h.callerProfile(c)
	if caller == nil {
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.ListRatings(c.Request.Context(), caller.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) remove(c *gin.Context) {
	caller := h.callerProfile(c)
	if caller == nil {
		return
	}

	recipeID := strings.TrimSpace(c.Param("recipe_id"))
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	ok, err := h.Repo.DeleteRating(c.Request.Context(), caller.ID, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		ev := sync.RatingEvent{
			Type:        "rating.delete",
			HouseholdID: caller.HouseholdID,
			ProfileID:   caller.ID,
			RecipeID:    recipeID,
			At:          time.Now().UTC(),
		}
		go h.Hub.Broadcast(ev)
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) callerProfile(c *gin.Context) *models.Profile {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	p, err := h.Households.GetProfileByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return nil
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile for user"})
		return nil
	}
	return p
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
