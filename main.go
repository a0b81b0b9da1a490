package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/sns"
	config "github.com/bezalel-media-core/crosspost/configuration"
	dynamo_configuration "github.com/bezalel-media-core/crosspost/configuration/dynamo"
	"github.com/bezalel-media-core/crosspost/dal"
	handlers "github.com/bezalel-media-core/crosspost/handlers"
	"github.com/bezalel-media-core/crosspost/logger"
	crosspost "github.com/bezalel-media-core/crosspost/service/crosspost"
	hooks "github.com/bezalel-media-core/crosspost/service/hooks"
	medium "github.com/bezalel-media-core/crosspost/service/medium"
	notices "github.com/bezalel-media-core/crosspost/service/notices"
	render "github.com/bezalel-media-core/crosspost/service/render"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.GetEnvConfigs()
	logs := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer logs.Sync()

	metaStore, err := newMetaStore(cfg, logs)
	if err != nil {
		log.Fatalf("failed to open metadata store: %s", err)
	}
	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %s", err)
	}

	deps := crosspost.Deps{
		Users:    dal.MediumUserDao{Meta: metaStore},
		Posts:    dal.MediumPostDao{Meta: metaStore},
		Medium:   medium.NewClient(cfg.MediumApiHost),
		Renderer: renderer,
		Auth:     handlers.NewAdminAuthorizer(cfg.AdminUserIDs),
		Log:      logs,
	}
	if cfg.CrosspostTopicArn != "" {
		deps.Events = crosspost.NewSnsEventPublisher(sns.New(config.GetAwsSession()), cfg.CrosspostTopicArn)
	}
	svc := crosspost.NewService(deps, crosspost.Options{
		SiteName:                  cfg.SiteName,
		EditProfileURL:            cfg.EditProfileURL,
		CanonicalUrlFromPermalink: cfg.CanonicalUrlFromPermalink,
		PersistOverridesOnFailure: cfg.PersistOverridesOnFailure,
	})

	server := handlers.NewServer(cfg.ListenAddr, handlers.Deps{
		Dispatcher:  hooks.NewDispatcher(hooks.CrosspostTable(svc, renderer)),
		Sessions:    newSessionStore(cfg),
		Log:         logs,
		AdminApiKey: cfg.AdminApiKey,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("server stopped: %s", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logs.Error("shutdown failed", logger.Error(err))
	}
}

func newMetaStore(cfg *config.EnvConfigVals, logs logger.Logger) (dal.MetaStore, error) {
	if cfg.MetaStoreBackend == config.META_BACKEND_DYNAMO {
		svc := dynamodb.New(config.GetAwsSession())
		if err := dynamo_configuration.Init(svc, cfg.DynamoMetaTable, logs); err != nil {
			return nil, err
		}
		return dal.NewDynamoMetaDao(svc, cfg.DynamoMetaTable), nil
	}
	db, err := dal.OpenSqlite(cfg.SqlitePath)
	if err != nil {
		return nil, err
	}
	return dal.NewSqliteMetaDao(db)
}

func newSessionStore(cfg *config.EnvConfigVals) notices.SessionStore {
	if cfg.SessionBackend == config.SESSION_BACKEND_REDIS {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return notices.NewRedisSessionStore(client, time.Duration(cfg.NoticeTTLSec)*time.Second)
	}
	return notices.NewMemorySessionStore()
}
