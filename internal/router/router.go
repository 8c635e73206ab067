package router

import (
	"net/http"

	"github.com/senyabanana/rfq-desk/internal/handlers"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func InitRoutes(deskHandler *handlers.DeskHandler, logger *zap.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)

	mux.HandleFunc("POST /api/rfqs/{rfqId}/sessions", deskHandler.OpenSession)
	mux.HandleFunc("GET /api/rfqs/{rfqId}/submissions", deskHandler.GetSubmissions)

	mux.HandleFunc("GET /api/sessions/{sessionId}", deskHandler.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{sessionId}", deskHandler.CloseSession)
	mux.HandleFunc("POST /api/sessions/{sessionId}/refresh", deskHandler.Refresh)
	mux.HandleFunc("PUT /api/sessions/{sessionId}/navigation", deskHandler.Navigate)
	mux.HandleFunc("POST /api/sessions/{sessionId}/next", deskHandler.Next)
	mux.HandleFunc("POST /api/sessions/{sessionId}/previous", deskHandler.Previous)
	mux.HandleFunc("PUT /api/sessions/{sessionId}/offer-type", deskHandler.SetOfferType)
	mux.HandleFunc("PUT /api/sessions/{sessionId}/offers", deskHandler.StageOffer)
	mux.HandleFunc("POST /api/sessions/{sessionId}/counter-batch/{itemId}", deskHandler.CollectOffer)
	mux.HandleFunc("DELETE /api/sessions/{sessionId}/counter-batch/{itemId}", deskHandler.RemoveCollectedOffer)
	mux.HandleFunc("PUT /api/sessions/{sessionId}/priorities", deskHandler.StagePriority)
	mux.HandleFunc("POST /api/sessions/{sessionId}/arc-batch/{itemId}", deskHandler.CollectArc)
	mux.HandleFunc("DELETE /api/sessions/{sessionId}/arc-batch/{itemId}", deskHandler.RemoveArc)
	mux.HandleFunc("POST /api/sessions/{sessionId}/submit/counter-offers", deskHandler.SubmitCounterOffers)
	mux.HandleFunc("POST /api/sessions/{sessionId}/submit/arc", deskHandler.SubmitArc)
	mux.HandleFunc("GET /api/sessions/{sessionId}/rounds", deskHandler.GetRounds)
	mux.HandleFunc("GET /api/sessions/{sessionId}/export", deskHandler.ExportComparison)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
	})

	return RequestID(Logger(logger)(c.Handler(mux)))
}
