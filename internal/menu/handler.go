package menu

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Traveler uploads a menu photo
// --------------------------------------------------
func (h *Handler) Process(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	if err := ValidateImageExtension(header.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeID := c.PostForm("store_id")
	travelerLang := c.PostForm("traveler_lang")

	m, err := h.service.ProcessPhoto(
		c.Request.Context(),
		file,
		header,
		storeID,
		travelerLang,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": m.SessionID,
		"store_id":   m.StoreID,
		"items":      entriesView(m),
	})
}

// --------------------------------------------------
// Traveler browses the ephemeral menu
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	sessionID := c.Param("session_id")

	m, err := h.service.GetMenu(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": m.SessionID,
		"store_id":   m.StoreID,
		"items":      entriesView(m),
	})
}

// entriesView is the read-only client contract: every field is always
// present with its documented default, so the client never special-cases
// absent data.
func entriesView(m *EphemeralMenu) []gin.H {
	items := make([]gin.H, 0, len(m.Entries))
	for _, e := range m.Entries {
		items = append(items, gin.H{
			"temp_id":       e.TempID,
			"name_origin":   e.Name.Origin,
			"name_traveler": e.Name.Traveler,
			"price_small":   e.PriceSmall,
			"price_large":   e.PriceLarge,
			"category":      e.Category,
			"description":   e.Description,
			"available":     e.Available,
		})
	}
	return items
}
