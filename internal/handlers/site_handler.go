package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopzone/internal/chatbot"
	"shopzone/internal/gallery"
)

// SiteHandler serves the marketing-site features: the CMS gallery and
// the Paboy helper bot.
type SiteHandler struct {
	gallery *gallery.Client
	bot     *chatbot.Bot
}

func NewSiteHandler(g *gallery.Client, bot *chatbot.Bot) *SiteHandler {
	return &SiteHandler{gallery: g, bot: bot}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// GET /v1/gallery
func (h *SiteHandler) GetGallery(c *gin.Context) {
	items, err := h.gallery.Items(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "could not load gallery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": gallery.FilterByTag(items, c.Query("tag")),
		"tags":  gallery.Tags(items),
	})
}

// GET /v1/chat
func (h *SiteHandler) GetChatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.bot.History()})
}

// POST /v1/chat
func (h *SiteHandler) PostChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reply":   h.bot.Reply(req.Message),
		"history": h.bot.History(),
	})
}
