package chat

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mealhub/internal/auth"
	"mealhub/internal/household"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type incomingMessage struct {
	Text     string `json:"text"`
	RecipeID string `json:"recipe_id"`
}

// HistoryHandler returns the caller's household chat backlog.
func HistoryHandler(hub *Hub, households *household.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		p, err := households.GetProfileByUser(c.Request.Context(), claims.UserID)
		if err != nil || p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile for user"})
			return
		}

		c.JSON(http.StatusOK, hub.History(p.HouseholdID))
	}
}

// WSHandler joins the caller to their household's chat room. The room
// is derived from the profile, never from the request, so members can
// only ever talk inside their own household.
func WSHandler(hub *Hub, households *household.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		p, err := households.GetProfileByUser(c.Request.Context(), claims.UserID)
		if err != nil || p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile for user"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		history := hub.Join(p.HouseholdID, ws, p.Name)
		for _, msg := range history {
			_ = ws.WriteJSON(msg)
		}

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			var incoming incomingMessage
			if err := json.Unmarshal(payload, &incoming); err != nil {
				// plain-text frame, treat the whole thing as the message
				text := strings.TrimSpace(string(payload))
				if text == "" {
					continue
				}
				hub.Broadcast(Message{
					Type:        "message",
					HouseholdID: p.HouseholdID,
					User:        hub.User(p.HouseholdID, ws),
					Text:        text,
					At:          time.Now().UTC(),
				})
				continue
			}

			text := strings.TrimSpace(incoming.Text)
			recipeID := strings.TrimSpace(incoming.RecipeID)
			if text == "" && recipeID == "" {
				continue
			}

			msgType := "message"
			if recipeID != "" {
				msgType = "recipe_share"
			}

			hub.Broadcast(Message{
				Type:        msgType,
				HouseholdID: p.HouseholdID,
				User:        hub.User(p.HouseholdID, ws),
				Text:        text,
				RecipeID:    recipeID,
				At:          time.Now().UTC(),
			})
		}

		hub.Leave(p.HouseholdID, ws)
	}
}
