package tts

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sentiment-backend/internal/shared/server/respond"
)

// Handler exposes the text-to-speech endpoint.
type Handler struct {
	Synth Synthesizer
}

// NewHandler constructs a Handler.
func NewHandler(synth Synthesizer) *Handler {
	return &Handler{Synth: synth}
}

// RegisterRoutes attaches the synthesis route to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/text-to-speech", h.synthesize)
}

type synthesizeResponse struct {
	Audio string `json:"audio"`
}

func (h *Handler) synthesize(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		respond.Error(c, http.StatusBadRequest, "No text provided")
		return
	}

	audio, err := h.Synth.Synthesize(c.Request.Context(), text)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, synthesizeResponse{
		Audio: base64.StdEncoding.EncodeToString(audio),
	})
}
