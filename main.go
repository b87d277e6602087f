package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kami8ma8810/ichizen-app/handlers"
	"github.com/kami8ma8810/ichizen-app/middleware"
	"github.com/kami8ma8810/ichizen-app/services"
	"github.com/kami8ma8810/ichizen-app/store"

	_ "net/http/pprof"
)

var (
	db              store.Store
	userService     *services.UserService
	activityService *services.ActivityService
	templateService *services.TemplateService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Backend selection happens exactly once: a DATABASE_URL means
	// Postgres, otherwise the transient in-memory store.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		pg, err := store.NewPostgresStore(ctx, dbURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		db = pg
		log.Println("Successfully connected to Postgres")
	} else {
		db = store.NewMemoryStore()
		log.Println("DATABASE_URL not set, using in-memory store (state is lost on restart)")
	}

	if err := middleware.InitFirebaseAuth(ctx, "./serviceAccountKey.json"); err != nil {
		log.Printf("Warning: Could not initialize Firebase auth: %v", err)
		log.Println("Running without token verification; requests must carry a userId parameter")
	} else {
		log.Println("Firebase auth initialized successfully")
	}

	userService = services.NewUserService(db)
	activityService = services.NewActivityService(db)
	templateService = services.NewTemplateService(db)

	if seeded, err := templateService.EnsureSeeded(ctx); err != nil {
		log.Fatal("Failed to seed template catalog:", err)
	} else if seeded > 0 {
		log.Printf("Seeded %d good deed templates into an empty catalog", seeded)
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing store...")
		db.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService)
	templateHandler := handlers.NewTemplateHandler(templateService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "ichizen-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.OptionalAuthMiddleware)

	api.HandleFunc("/activities", activityHandler.GetActivities).Methods("GET")
	api.HandleFunc("/activities", activityHandler.CreateActivity).Methods("POST")
	api.HandleFunc("/activities/today", activityHandler.GetTodayActivity).Methods("GET")
	api.HandleFunc("/activities/streak", activityHandler.GetStreak).Methods("GET")
	api.HandleFunc("/activities/calendar", activityHandler.GetCalendar).Methods("GET")

	api.HandleFunc("/templates", templateHandler.GetTemplates).Methods("GET")
	api.HandleFunc("/templates/daily", templateHandler.GetDailyTemplate).Methods("GET")
	api.HandleFunc("/templates/recommendations", templateHandler.GetRecommendations).Methods("GET")

	api.HandleFunc("/users/sync", userHandler.SyncUser).Methods("POST")
	api.HandleFunc("/users/stats", userHandler.GetUserStats).Methods("GET")

	// Reseeding wipes the catalog, so it requires a verified token
	// whenever token verification is configured.
	seedRouter := api.PathPrefix("/seed").Subrouter()
	if middleware.AuthEnabled() {
		seedRouter.Use(middleware.FirebaseAuthMiddleware)
	}
	seedRouter.HandleFunc("/templates", templateHandler.ReseedTemplates).Methods("POST")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
