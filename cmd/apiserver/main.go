package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"

	confluent "github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"socialnet/internal/config"
	"socialnet/internal/handlers/apiserver"
	"socialnet/internal/kafka"
	"socialnet/internal/middleware"
	socialredis "socialnet/internal/redis"
	"socialnet/internal/services"
	"socialnet/internal/storage"
	"socialnet/internal/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.Printf("starting %s %s", cfg.AppName, cfg.AppVersion)

	db, err := storage.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := storage.AutoMigrateTables(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	blacklist := socialredis.NewRedisTokenBlacklist(redisClient)

	producer, err := kafka.NewConfluentKafkaProducer(cfg.Kafka)
	if err != nil {
		log.Fatalf("failed to create kafka producer: %v", err)
	}
	defer producer.Close()

	// Repositories
	userRepo := storage.NewGormUserRepository(db)
	relRepo := storage.NewGormRelationshipRepository(db)
	postRepo := storage.NewGormPostRepository(db)
	commentRepo := storage.NewGormCommentRepository(db)
	messageRepo := storage.NewGormMessageRepository(db)

	// Notification pipeline: services -> kafka -> in-process consumer -> hub
	notifier := services.NewKafkaNotifier(producer, cfg.Kafka)
	hub := websocket.NewHub()
	go hub.Run()

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	consumer, err := kafka.NewConfluentKafkaConsumer(cfg.Kafka)
	if err != nil {
		log.Fatalf("failed to create kafka consumer: %v", err)
	}
	defer consumer.Close()
	go func() {
		err := consumer.Consume(consumerCtx, []string{cfg.Kafka.NotificationsTopic}, cfg.Kafka.ConsumerGroup,
			func(ctx context.Context, msg *confluent.Message) error {
				var event services.NotificationEvent
				if err := json.Unmarshal(msg.Value, &event); err != nil {
					return fmt.Errorf("malformed notification event: %w", err)
				}
				hub.SendToUser(event.RecipientID, msg.Value)
				return nil
			})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	relService := services.NewRelationshipService(relRepo, userRepo, notifier)
	messageService := services.NewMessageService(messageRepo, userRepo, notifier)
	postService := services.NewPostService(postRepo, userRepo, relRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo)

	// Handlers
	authHandler := apiserver.NewAuthHandler(authService, blacklist)
	userHandler := apiserver.NewUserHandler(userService)
	relHandler := apiserver.NewRelationshipHandler(relService)
	messageHandler := apiserver.NewMessageHandler(messageService)
	postHandler := apiserver.NewPostHandler(postService)
	commentHandler := apiserver.NewCommentHandler(commentService)
	wsHandler := apiserver.NewWSHandler(hub)

	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/{userID:[0-9]+}", userHandler.GetProfile).Methods(http.MethodGet)

	// Authenticated routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecretKey, blacklist))

	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	api.HandleFunc("/users/me", userHandler.GetMe).Methods(http.MethodGet)
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods(http.MethodPut)
	api.HandleFunc("/users/search", userHandler.Search).Methods(http.MethodGet)

	api.HandleFunc("/relationships/request/{userID:[0-9]+}", relHandler.SendRequest).Methods(http.MethodPost)
	api.HandleFunc("/relationships/accept/{userID:[0-9]+}", relHandler.AcceptRequest).Methods(http.MethodPut)
	api.HandleFunc("/relationships/request/{userID:[0-9]+}", relHandler.CancelOrReject).Methods(http.MethodDelete)
	api.HandleFunc("/relationships/friend/{userID:[0-9]+}", relHandler.RemoveFriend).Methods(http.MethodDelete)
	api.HandleFunc("/relationships/block/{userID:[0-9]+}", relHandler.Block).Methods(http.MethodPost)
	api.HandleFunc("/relationships/friends", relHandler.ListFriends).Methods(http.MethodGet)
	api.HandleFunc("/relationships/pending", relHandler.ListPending).Methods(http.MethodGet)
	api.HandleFunc("/relationships/status/{userID:[0-9]+}", relHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/relationships/users", relHandler.ListUsersWithStatus).Methods(http.MethodGet)

	api.HandleFunc("/messages/conversations", messageHandler.ListConversations).Methods(http.MethodGet)
	api.HandleFunc("/messages/conversation/{userID:[0-9]+}", messageHandler.GetConversation).Methods(http.MethodGet)
	api.HandleFunc("/messages/seen/{senderID:[0-9]+}", messageHandler.MarkSeen).Methods(http.MethodPut)
	api.HandleFunc("/messages/{receiverID:[0-9]+}", messageHandler.Send).Methods(http.MethodPost)
	api.HandleFunc("/messages/{messageID:[0-9]+}", messageHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/posts", postHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/posts/timeline", postHandler.Timeline).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", postHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", postHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id:[0-9]+}", postHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id:[0-9]+}/like", postHandler.Like).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}/unlike", postHandler.Unlike).Methods(http.MethodPost)

	api.HandleFunc("/comments/post/{postID:[0-9]+}", commentHandler.ListForPost).Methods(http.MethodGet)
	api.HandleFunc("/comments/{postID:[0-9]+}", commentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id:[0-9]+}", commentHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id:[0-9]+}", commentHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/ws", wsHandler.Connect).Methods(http.MethodGet)

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods(cfg.Server.CORS.AllowedMethods),
		gorillaHandlers.AllowedHeaders(cfg.Server.CORS.AllowedHeaders),
		gorillaHandlers.ExposedHeaders(cfg.Server.CORS.ExposedHeaders),
		gorillaHandlers.AllowCredentials(),
		gorillaHandlers.MaxAge(cfg.Server.CORS.MaxAge),
	)(router)

	server := &http.Server{
		Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:        corsHandler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received")

	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("error closing redis client: %v", err)
	}
	log.Println("server stopped")
}
