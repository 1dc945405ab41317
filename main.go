package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"lovematch_server/config"
	"lovematch_server/events"
	"lovematch_server/logger"
	"lovematch_server/routes"
	"lovematch_server/services"
	"lovematch_server/socket"
)

func main() {
	app := &cli.App{
		Name:  "lovematch",
		Usage: "LoveMatch API server",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and Socket.IO server",
				Flags:  config.Flags(),
				Action: serve,
			},
		},
		// plain `lovematch` behaves like `lovematch serve`
		Flags:  config.Flags(),
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg := config.FromContext(c)
	if _, err := logger.New(cfg.LogLevel, cfg.LogConsole); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Initializing AWS clients...")
	awsCfg, err := services.LoadAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return err
	}
	dynamoService := &services.DynamoService{Client: services.NewDynamoDBClient(awsCfg, cfg.DynamoDBEndpoint)}
	s3Client := services.NewS3Client(awsCfg, cfg.S3Endpoint)
	imageStore := &services.S3Service{
		Client:        s3Client,
		Presigner:     services.NewPresigner(s3Client),
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: cfg.S3PublicBaseURL,
		Region:        awsCfg.Region,
	}

	tables := services.NewTables(cfg.TablePrefix)
	users := &services.DynamoUserRepository{Dynamo: dynamoService, Table: tables.Users}
	accounts := &services.DynamoAccountRepository{Dynamo: dynamoService, Table: tables.Accounts}
	chats := &services.DynamoChatRepository{Dynamo: dynamoService, ChatsTable: tables.Chats, MessagesTable: tables.Messages}

	chatProvider, err := services.NewChatProvider(cfg.StreamAPIKey, cfg.StreamAPISecret, cfg.StreamTokenTTL)
	if err != nil {
		return err
	}
	publisher := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	if reason := events.NoopReason(publisher); reason != "" {
		log.Warn().Str("reason", reason).Msg("match and message events will not be published")
	}

	// Initialize Services
	chatTokenService := services.NewChatTokenService(chatProvider, cfg.StreamTokenTTL)
	userProfileService := &services.UserProfileService{Users: users, Images: imageStore, Chat: chatProvider}
	chatService := &services.ChatService{Chats: chats, Events: publisher}
	matchService := &services.MatchService{Users: users, Chats: chats, Chat: chatProvider, Events: publisher}
	authService := &services.AuthService{
		Accounts:   accounts,
		Profiles:   userProfileService,
		ChatTokens: chatTokenService,
		Secret:     []byte(cfg.JWTSecret),
		SessionTTL: cfg.SessionTTL,
	}

	socketServer := socket.NewServer(authService, chatService)
	chatService.Notifier = socketServer
	matchService.Notifier = socketServer
	authService.Notifier = socketServer
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Error().Err(err).Msg("socket server stopped")
		}
	}()
	defer socketServer.Close()

	r := routes.NewRouter()
	routes.RegisterAuthRoutes(r, authService, authService)
	routes.RegisterUserProfileRoutes(r, userProfileService, authService)
	routes.RegisterMatchRoutes(r, matchService, authService)
	routes.RegisterChatRoutes(r, chatService, authService)
	routes.RegisterChatTokenRoutes(r, chatTokenService, authService)

	// socket.io bypasses the router middleware, which would hide the websocket hijacker
	root := http.NewServeMux()
	root.Handle("/socket.io/", socketServer)
	root.Handle("/", r)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(root)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Bool("chat", cfg.StreamConfigured()).
			Str("events", events.Mode(publisher)).
			Msg("Starting server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
