package suggest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mealhub/internal/auth"
	"mealhub/internal/engine"
	"mealhub/internal/household"
	"mealhub/pkg/models"
)

type Handler struct {
	Svc        *engine.Service
	Households *household.Repo
}

func NewHandler(svc *engine.Service, households *household.Repo) *Handler {
	return &Handler{Svc: svc, Households: households}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/suggest/next", h.next)
	rg.GET("/suggest", h.forProfile)
	rg.GET("/suggest/family", h.forHousehold)
}

// next serves the rating flow: the one recipe to put on the card.
// ?exclude= skips the recipe currently on screen while prefetching.
func (h *Handler) next(c *gin.Context) {
	caller := h.callerProfile(c)
	if caller == nil {
		return
	}

	profileID := h.targetProfileID(c, caller)
	if profileID == "" {
		return
	}

	rec, err := h.Svc.NextToRate(c.Request.Context(), profileID, strings.TrimSpace(c.Query("exclude")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "next failed"})
		return
	}
	if rec == nil {
		// all caught up is a state, not an error
		c.JSON(http.StatusOK, gin.H{"recipe": nil, "status": "caught_up"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": rec})
}

func (h *Handler) forProfile(c *gin.Context) {
	caller := h.callerProfile(c)
	if caller == nil {
		return
	}

	profileID := h.targetProfileID(c, caller)
	if profileID == "" {
		return
	}

	limit := parseInt(c.Query("limit"), 10)
	suggestions, err := h.Svc.SuggestForProfile(c.Request.Context(), profileID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suggest failed"})
		return
	}

	items := make([]gin.H, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, gin.H{
			"recipe": s.Recipe,
			"score":  engine.Round2(s.Score),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_id": profileID,
		"items":      items,
	})
}

func (h *Handler) forHousehold(c *gin.Context) {
	caller := h.callerProfile(c)
	if caller == nil {
		return
	}

	limit := parseInt(c.Query("limit"), 10)
	suggestions, err := h.Svc.SuggestForHousehold(c.Request.Context(), caller.HouseholdID, limit, caller.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suggest failed"})
		return
	}

	items := make([]gin.H, 0, len(suggestions))
	for _, s := range suggestions {
		memberScores := make(map[string]float64, len(s.MemberScores))
		for profileID, score := range s.MemberScores {
			memberScores[profileID] = engine.Round2(score)
		}
		items = append(items, gin.H{
			"recipe":        s.Recipe,
			"group_score":   engine.Round2(s.GroupScore),
			"member_scores": memberScores,
			"explanation":   s.Explanation,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"household_id": caller.HouseholdID,
		"items":        items,
	})
}

// targetProfileID allows ?profile_id= for other members of the same
// household (rating/browsing on behalf of a child); defaults to the
// caller's own profile. Returns "" after writing the error response.
func (h *Handler) targetProfileID(c *gin.Context, caller *models.Profile) string {
	target := strings.TrimSpace(c.Query("profile_id"))
	if target == "" || target == caller.ID {
		return caller.ID
	}

	p, err := h.Households.GetProfile(c.Request.Context(), target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return ""
	}
	if p == nil || p.HouseholdID != caller.HouseholdID {
		c.JSON(http.StatusForbidden, gin.H{"error": "profile not in your household"})
		return ""
	}
	return p.ID
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
