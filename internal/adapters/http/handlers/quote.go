package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-consumer/internal/app"
	"github.com/jsamuelsen/quote-consumer/internal/domain"
)

const mimePlainUTF8 = "text/plain; charset=utf-8"

// QuoteHandler serves the quote endpoint.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// QuoteResponse mirrors the upstream payload for JSON clients.
type QuoteResponse struct {
	Type  string             `json:"type"`
	Value QuoteValueResponse `json:"value"`
}

// QuoteValueResponse is the value part of QuoteResponse.
type QuoteValueResponse struct {
	ID    int64  `json:"id"`
	Quote string `json:"quote"`
}

func toQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		Type: q.Type,
		Value: QuoteValueResponse{
			ID:    q.Value.ID,
			Quote: q.Value.Quote,
		},
	}
}

// GetQuote handles GET /.
// Fetches one quote per request and returns its text form, or the JSON
// shape when Accept prefers application/json. Failures are recorded with
// c.Error and answered with a bare status by the error middleware.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.service.GetRandomQuote(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	switch c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, toQuoteResponse(quote))
	default:
		c.Data(http.StatusOK, mimePlainUTF8, []byte(quote.String()))
	}
}

// RegisterQuoteRoutes registers the quote route on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg gin.IRoutes) {
	rg.GET("/", h.GetQuote)
}
