package household

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mealhub/internal/auth"
	"mealhub/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.getMine)
	rg.GET("/me/members", h.listMembers)
	rg.POST("/me/profiles", h.addProfile)
	rg.POST("/join", h.join)
}

// callerProfile resolves the authenticated user's member profile.
func (h *Handler) callerProfile(c *gin.Context) *models.Profile {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	p, err := h.Repo.GetProfileByUser(c.Request.Context(), claims.UserID)
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

func (h *Handler) getMine(c *gin.Context) {
	p := h.callerProfile(c)
	if p == nil {
		return
	}

	hh, err := h.Repo.GetByID(c.Request.Context(), p.HouseholdID)
	if err != nil || hh == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "household lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"household":  hh,
		"profile_id": p.ID,
	})
}

func (h *Handler) listMembers(c *gin.Context) {
	p := h.callerProfile(c)
	if p == nil {
		return
	}

	members, err := h.Repo.ListProfiles(c.Request.Context(), p.HouseholdID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"household_id": p.HouseholdID,
		"members":      members,
	})
}

type addProfileReq struct {
	Name string `json:"name"`
}

// addProfile adds a household member without an account, e.g. a child
// whose ratings are entered on a parent's phone.
func (h *Handler) addProfile(c *gin.Context) {
	p := h.callerProfile(c)
	if p == nil {
		return
	}

	var req addProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must be 1-50 chars"})
		return
	}

	member := models.Profile{
		ID:          uuid.NewString(),
		HouseholdID: p.HouseholdID,
		Name:        name,
	}
	if err := h.Repo.AddProfile(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create profile failed"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

type joinReq struct {
	InviteCode string `json:"invite_code"`
}

// join moves the caller's profile into the household behind the invite
// code. Learned preference weights follow the profile.
func (h *Handler) join(c *gin.Context) {
	p := h.callerProfile(c)
	if p == nil {
		return
	}

	var req joinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	code := strings.TrimSpace(req.InviteCode)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invite_code required"})
		return
	}

	hh, err := h.Repo.GetByInviteCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if hh == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid invite code"})
		return
	}
	if hh.ID == p.HouseholdID {
		c.JSON(http.StatusOK, gin.H{"household": hh, "status": "already a member"})
		return
	}

	if err := h.Repo.MoveProfile(c.Request.Context(), p.ID, hh.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "join failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"household": hh, "status": "joined"})
}
