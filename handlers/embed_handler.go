package handlers

import (
	"net/http"

	"github.com/Dosada05/referee-review/embeds"
)

const maxPreviewLength = 10_000

type EmbedHandler struct{}

func NewEmbedHandler() *EmbedHandler {
	return &EmbedHandler{}
}

// Preview разбивает черновик комментария на сегменты так же, как при отображении.
func (h *EmbedHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text string `json:"text"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Text) > maxPreviewLength {
		errorResponse(w, r, http.StatusRequestEntityTooLarge, "text is too long")
		return
	}

	response := jsonResponse{
		"segments":   embeds.Parse(input.Text),
		"has_embeds": embeds.HasEmbeddableLink(input.Text),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
