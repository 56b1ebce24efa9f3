package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/convokit/present"
	"github.com/kbukum/convokit/transcript"
)

// Annotator turns a transcript into a rendered document.
type Annotator interface {
	Annotate(ctx context.Context, t *transcript.Transcript, format string) (*present.Document, error)
}

// RegisterAnnotate mounts POST /v1/annotate.
func (s *Server) RegisterAnnotate(a Annotator) {
	s.engine.POST("/v1/annotate", AnnotateHandler(a))
}

// AnnotateHandler decodes a transcript body and answers with the annotated
// document. The optional format query parameter names the vocabulary.
func AnnotateHandler(a Annotator) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := transcript.Decode(c.Request.Body)
		if err != nil {
			RespondWithError(c, err)
			return
		}

		doc, err := a.Annotate(c.Request.Context(), t, c.Query("format"))
		if err != nil {
			RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}
