// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/gorm"

	"github.com/dishcovery/go-dishcovery/internal/config"
	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/handlers"
	"github.com/dishcovery/go-dishcovery/internal/middleware"
	"github.com/dishcovery/go-dishcovery/internal/ratelimit"
	chatrepo "github.com/dishcovery/go-dishcovery/internal/repository/chat"
	userrepo "github.com/dishcovery/go-dishcovery/internal/repository/user"
	"github.com/dishcovery/go-dishcovery/internal/services"
	"github.com/dishcovery/go-dishcovery/internal/services/history"
	"github.com/dishcovery/go-dishcovery/internal/services/recipeapi"
	"github.com/dishcovery/go-dishcovery/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// newChatStore picks the history backend: MongoDB normally, the in-memory
// store when CHAT_STORE=memory (local development without a database).
func newChatStore(cfg *config.Config) (chatrepo.ChatStore, func()) {
	if cfg.ChatStore == "memory" {
		log.Println("Using in-memory chat store; history will not survive restarts")
		return chatrepo.NewMemoryChatStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("FATAL: MongoDB connect error: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("FATAL: MongoDB ping error: %v", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := chatrepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("FATAL: MongoDB index error: %v", err)
	}

	cleanup := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}
	return chatrepo.NewMongoChatStore(db), cleanup
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	chatStore, closeChatStore := newChatStore(cfg)
	defer closeChatStore()

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)

	// --- Services ---
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, services.NewLogger("auth"))
	historyManager := history.NewManager(chatStore, services.NewLogger("history"))

	// The signed-in user's own token doubles as the bearer credential for
	// the generation backend; unauthenticated requests go out bare.
	tokenSource := func(ctx context.Context) (string, error) {
		if token, ok := ctx.Value(middleware.AuthTokenKey).(string); ok {
			return token, nil
		}
		return "", nil
	}
	backendClient, err := recipeapi.NewClient(
		&recipeapi.Config{BaseURL: cfg.BackendBaseURL, Timeout: cfg.BackendTimeout},
		tokenSource,
		services.NewLogger("recipeapi"),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize backend client: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, historyManager)
	chatHandler := handlers.NewChatHandler(historyManager)
	recipeHandler := handlers.NewRecipeHandler(backendClient, cfg.MaxUploadBytes)
	pageHandler := handlers.NewPageHandler()

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)
	loginLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	uploadLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.UploadConfig())
	defer loginLimiter.Close()
	defer uploadLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/api/log", handlers.LogFrontendEvent).Methods("POST")
	r.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	r.HandleFunc("/login", pageHandler.ShowLoginPage).Methods("GET")
	r.HandleFunc("/register", pageHandler.ShowRegisterPage).Methods("GET")
	r.Handle("/login", middleware.RateLimitMiddleware(loginLimiter, "login")(http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// --- Protected Routes ---
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/dashboard", pageHandler.ShowDashboardPage).Methods("GET")

	api := protected.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/refresh", chatHandler.RefreshChats).Methods("POST")
	api.HandleFunc("/chats/current", chatHandler.SaveChat).Methods("PUT")
	api.HandleFunc("/chats/{id}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chat/suggestions", chatHandler.GetSuggestions).Methods("GET")
	api.HandleFunc("/chat/init", recipeHandler.InitChat).Methods("POST")
	api.HandleFunc("/chat/message", recipeHandler.ChatMessage).Methods("POST")
	api.HandleFunc("/chat/clear", recipeHandler.ClearChat).Methods("POST")
	api.Handle("/recipe/upload", middleware.RateLimitMiddleware(uploadLimiter, "upload")(http.HandlerFunc(recipeHandler.Upload))).Methods("POST")
	api.HandleFunc("/recipe/sample/{name}", recipeHandler.SampleRecipe).Methods("GET")
	api.HandleFunc("/samples", recipeHandler.Samples).Methods("GET")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "404", "Page Not Found", "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "405", "Method Not Allowed", "The method is not allowed for this resource.")
	})

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Dishcovery server starting on port %s", port)
	log.Printf("Dashboard: http://localhost%s/dashboard", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
