package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"mindscreen/internal/config"
	"mindscreen/internal/metrics"
	"mindscreen/internal/service"
	"mindscreen/internal/transport/rest/handler"
	"mindscreen/internal/transport/rest/middleware"
	"mindscreen/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	ScreeningService *service.ScreeningService
	ChatService      *service.ChatService
	MoodService      *service.MoodService
	WSHub            *ws.Hub
	Metrics          *metrics.Metrics
	Logger           log.FieldLogger
	CORS             config.CORSConfig

	// RateLimit is requests per second on the inference routes; 0 disables it.
	RateLimit int
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	screeningHandler := handler.NewScreeningHandler(c.ScreeningService)
	chatHandler := handler.NewChatHandler(c.ChatService)
	moodHandler := handler.NewMoodHandler(c.MoodService)
	wsHandler := ws.NewHandler(c.WSHub, c.ChatService, c.CORS.AllowedOrigins, c.Logger)

	// Initialize middleware
	var limiter *middleware.RateLimiter
	if c.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(c.RateLimit)
	}
	limit := middleware.RateLimit(limiter)

	r.Use(middleware.RequestID, middleware.Logging(c.Logger), middleware.Metrics(c.Metrics), corsMiddleware(c.CORS))

	r.HandleFunc("/", handler.Root).Methods("GET")
	r.HandleFunc("/health", handler.Health).Methods("GET")
	r.Handle("/metrics", c.Metrics.Handler()).Methods("GET")

	r.HandleFunc("/screening/{instrument}", screeningHandler.Submit).Methods("POST", "OPTIONS")

	// Inference routes; the trailing-slash forms are kept for existing clients.
	for _, path := range []string{"/chat_ai", "/chat_ai/"} {
		r.Handle(path, limit(http.HandlerFunc(chatHandler.Chat))).Methods("POST", "OPTIONS")
	}
	for _, path := range []string{"/predict_mood", "/predict_mood/"} {
		r.Handle(path, limit(http.HandlerFunc(moodHandler.Predict))).Methods("POST", "OPTIONS")
	}

	r.HandleFunc("/ws/chat", wsHandler.Chat).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}` + "\n"))
	})

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
