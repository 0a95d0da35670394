package speech

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sentiment-backend/internal/shared/server/respond"
	"sentiment-backend/internal/shared/storage/object"
)

const maxUploadSize = 10 << 20 // 10MB

// audioExt is the extension for stored audio blobs; uploads are expected
// to be Opus-in-WebM.
const audioExt = ".webm"

// Handler exposes the speech-to-text endpoint.
type Handler struct {
	Recognizer Recognizer
	Blobs      object.BlobStore
}

// NewHandler constructs a Handler.
func NewHandler(recognizer Recognizer, blobs object.BlobStore) *Handler {
	return &Handler{Recognizer: recognizer, Blobs: blobs}
}

// RegisterRoutes attaches the recognition route to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/speech-to-text", h.speechToText)
}

type transcriptResponse struct {
	Transcript    string `json:"transcript"`
	AudioFilename string `json:"audio_filename"`
}

func (h *Handler) speechToText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file part")
		return
	}
	if fileHeader.Filename == "" || fileHeader.Size == 0 {
		respond.Error(c, http.StatusBadRequest, "No selected file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}

	transcript, err := h.Recognizer.Transcribe(c.Request.Context(), audio)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSpeech):
			respond.Error(c, http.StatusBadRequest, "No speech detected")
		default:
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// The blob is stored only after recognition succeeds, so a failed
	// request leaves no audio behind.
	audioFilename := uuid.NewString() + audioExt
	if _, err := h.Blobs.Save(c.Request.Context(), audioFilename, bytes.NewReader(audio)); err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, transcriptResponse{
		Transcript:    transcript,
		AudioFilename: audioFilename,
	})
}
