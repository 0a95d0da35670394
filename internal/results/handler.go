package results

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sentiment-backend/internal/nlp"
	"sentiment-backend/internal/shared/server/respond"
)

// Handler wires the sentiment analysis endpoints to the adapter and repo.
type Handler struct {
	Repo Repo
	NLP  nlp.Client
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo, nlpClient nlp.Client) *Handler {
	return &Handler{Repo: repo, NLP: nlpClient}
}

// RegisterRoutes attaches the analysis routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/analyze-text", h.analyzeText)
	r.POST("/analyze-speech", h.analyzeSpeech)
	r.GET("/get-result/:result_id", h.getResult)
}

type analyzeResponse struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	Magnitude float64   `json:"magnitude"`
	ResultID  string    `json:"result_id"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		respond.Error(c, http.StatusBadRequest, "No text provided")
		return
	}

	h.analyze(c, text, "")
}

type analyzeSpeechRequest struct {
	Transcript    string `json:"transcript"`
	AudioFilename string `json:"audio_filename"`
}

func (h *Handler) analyzeSpeech(c *gin.Context) {
	var req analyzeSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "No transcript provided")
		return
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		respond.Error(c, http.StatusBadRequest, "No transcript provided")
		return
	}

	h.analyze(c, transcript, strings.TrimSpace(req.AudioFilename))
}

// analyze runs the shared adapter → classifier → store pipeline.
func (h *Handler) analyze(c *gin.Context, text, audioFilename string) {
	sentiment, err := h.NLP.AnalyzeSentiment(c.Request.Context(), text)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	result := AnalysisResult{
		Text:          text,
		Sentiment:     Classify(sentiment.Score),
		Score:         sentiment.Score,
		Magnitude:     sentiment.Magnitude,
		AudioFilename: audioFilename,
	}

	id, err := h.Repo.Put(c.Request.Context(), result)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Set("resultId", id)

	respond.OK(c, analyzeResponse{
		Sentiment: result.Sentiment,
		Score:     result.Score,
		Magnitude: result.Magnitude,
		ResultID:  id,
	})
}

func (h *Handler) getResult(c *gin.Context) {
	id := c.Param("result_id")

	result, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Result not found")
		default:
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.Set("resultId", id)

	respond.OK(c, result)
}
