package main

import (
    "context"
    "net/http"
    "os"
    "os/signal"
    "time"

    "github.com/gorilla/mux"
    "github.com/joho/godotenv"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/rs/cors"

    "quizprep-server/internal/auth"
    "quizprep-server/internal/mcqgen"
    "quizprep-server/internal/models"
    "quizprep-server/internal/question"
    "quizprep-server/internal/quiz"
    "quizprep-server/pkg/cache"
    "quizprep-server/pkg/database"
    "quizprep-server/pkg/logger"
    "quizprep-server/pkg/metrics"
)

func main() {
    log := logger.NewLogger("quizprep")

    if err := godotenv.Load(); err != nil {
        log.Warn(".env file not found")
    }

    dbConfig := &database.Config{
        Host:     os.Getenv("DB_HOST"),
        Port:     os.Getenv("DB_PORT"),
        User:     os.Getenv("DB_USER"),
        Password: os.Getenv("DB_PASSWORD"),
        DBName:   os.Getenv("DB_NAME"),
    }

    db, err := database.NewPostgresDB(dbConfig)
    if err != nil {
        log.WithError(err).Fatal("Failed to connect to database")
    }
    err = db.AutoMigrate(
        &models.Admin{},
        &models.Question{},
        &models.QuizResult{},
        &models.ResultItem{},
    )
    if err != nil {
        log.WithError(err).Fatal("Failed to migrate database")
    }

    redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

    sessions := auth.NewSessionManager(os.Getenv("JWT_SECRET"))

    authRepo := auth.NewRepository(db)
    questionRepo := question.NewRepository(db)
    quizRepo := quiz.NewRepository(db)

    authService := auth.NewService(authRepo, sessions)
    questionService := question.NewService(questionRepo, redisCache, log)
    quizService := quiz.NewService(quizRepo, redisCache, log)
    generator := mcqgen.NewClient(os.Getenv("OPENAI_API_KEY"))

    authHandler := auth.NewHandler(authService, sessions, log)
    questionHandler := question.NewHandler(questionService, log)
    quizHandler := quiz.NewHandler(quizService, log)
    mcqHandler := mcqgen.NewHandler(generator, log)

    router := mux.NewRouter()

    httpMetrics := metrics.NewMetrics("api")
    router.Use(httpMetrics.Middleware(func(r *http.Request) string {
        if route := mux.CurrentRoute(r); route != nil {
            if pattern, err := route.GetPathTemplate(); err == nil {
                return pattern
            }
        }
        return "unmatched"
    }))

    frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
    if frontendOrigin == "" {
        frontendOrigin = "http://localhost:3000"
    }

    corsMiddleware := cors.New(cors.Options{
        AllowedOrigins:   []string{frontendOrigin},
        AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
        AllowedHeaders:   []string{"Content-Type", "X-Requested-With"},
        ExposedHeaders:   []string{"Content-Length"},
        AllowCredentials: true,
        MaxAge:           300,
    })
    handler := corsMiddleware.Handler(router)

    router.Handle("/metrics", promhttp.Handler()).Methods("GET")

    // Public routes - no session required
    router.HandleFunc("/api/admin/signup", authHandler.Signup).Methods("POST", "OPTIONS")
    router.HandleFunc("/api/admin/login", authHandler.Login).Methods("POST", "OPTIONS")
    router.HandleFunc("/api/admin/logout", authHandler.Logout).Methods("POST", "OPTIONS")
    router.HandleFunc("/api/questions", questionHandler.List).Methods("GET", "OPTIONS")
    router.HandleFunc("/api/subjects", questionHandler.Subjects).Methods("GET", "OPTIONS")
    router.HandleFunc("/api/quiz/submit", quizHandler.Submit).Methods("POST", "OPTIONS")
    router.HandleFunc("/api/quiz/result", quizHandler.Result).Methods("GET", "OPTIONS")

    // Admin routes - session cookie required. CookiePresence is the cheap
    // pre-check; SessionMiddleware is the authoritative verify.
    adminRouter := router.PathPrefix("/api").Subrouter()
    adminRouter.Use(auth.CookiePresence)
    adminRouter.Use(auth.SessionMiddleware(sessions))

    adminRouter.HandleFunc("/admin/verify", authHandler.Verify).Methods("GET")
    adminRouter.HandleFunc("/admin/upload-questions", questionHandler.Upload).Methods("POST")
    adminRouter.HandleFunc("/admin/upload-questions/file", questionHandler.UploadFile).Methods("POST")
    adminRouter.HandleFunc("/questions", questionHandler.Create).Methods("POST")
    adminRouter.HandleFunc("/questions/bulk", questionHandler.BulkInsert).Methods("POST")
    adminRouter.HandleFunc("/questions/{id:[0-9]+}", questionHandler.Update).Methods("PUT")
    adminRouter.HandleFunc("/questions/{id:[0-9]+}", questionHandler.Delete).Methods("DELETE")
    adminRouter.HandleFunc("/mcq/generate", mcqHandler.Generate).Methods("POST")

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }

    srv := &http.Server{
        Addr:         ":" + port,
        Handler:      handler,
        ReadTimeout:  15 * time.Second,
        WriteTimeout: 60 * time.Second,
    }

    go func() {
        log.WithField("port", port).Info("Server starting")
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.WithError(err).Fatal("Failed to start server")
        }
    }()

    c := make(chan os.Signal, 1)
    signal.Notify(c, os.Interrupt)
    <-c

    ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        log.WithError(err).Error("Server forced to shutdown")
    }

    log.Info("Server shutdown gracefully")
}
