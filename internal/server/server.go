package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/session"
	"taskboard/internal/storage"
)

type Server struct {
	Engine *gin.Engine
	Config *config.Config
	Log    *logrus.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	log := logrus.New()

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Using %s storage", cfg.StorageDriver)

	sess := session.Open(context.Background(), board.NewService(), store, log)
	boardHandler := handler.NewBoardHandler(sess)

	r := gin.Default()

	r.GET("/board", boardHandler.GetBoard)
	r.GET("/columns/:id/tasks", boardHandler.GetByColumn)
	r.POST("/tasks", boardHandler.Create)
	r.PUT("/tasks/:id", boardHandler.Update)
	r.DELETE("/tasks/:id", boardHandler.Delete)
	r.POST("/tasks/:id/move", boardHandler.Move)

	return &Server{
		Engine: r,
		Config: cfg,
		Log:    log,
	}, nil
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "file":
		return storage.NewFileStore(cfg.BoardFile), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedisStore(client, cfg.BoardKey), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
		}
		store := storage.NewPostgresStore(db, cfg.BoardKey)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate board table: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Printf("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	s.Log.Println("✅ Server exited properly")
}
