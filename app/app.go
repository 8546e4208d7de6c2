package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/stockroom-service/config"
	"github.com/Astemirdum/stockroom-service/internal/handler"
	"github.com/Astemirdum/stockroom-service/internal/repository"
	"github.com/Astemirdum/stockroom-service/internal/server"
	"github.com/Astemirdum/stockroom-service/internal/service"
	"github.com/Astemirdum/stockroom-service/migrations"
	"github.com/Astemirdum/stockroom-service/pkg/kafka"
	"github.com/Astemirdum/stockroom-service/pkg/logger"
	"github.com/Astemirdum/stockroom-service/pkg/postgres"
)

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "stockroom")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}
	svc := service.NewService(repo, log)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, decisions will not be published", zap.Error(err))
	}
	h := handler.New(svc, log, producer, cfg.Kafka.DecisionsTopic)

	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	defer consumeCancel()
	if group, err := kafka.NewConsumerGroup(cfg.Kafka); err != nil {
		log.Warn("kafka consumer unavailable, scan topic will not be consumed", zap.Error(err))
	} else {
		consumer := handler.NewConsumer(svc.RecordScan, log)
		gg, gctx := errgroup.WithContext(consumeCtx)
		gg.Go(func() error {
			for {
				if err := group.Consume(gctx, []string{cfg.Kafka.ScansTopic}, consumer); err != nil {
					if gctx.Err() != nil {
						return nil
					}
					log.Error("consume", zap.Error(err))
				}
			}
		})
		defer func() {
			consumeCancel()
			_ = gg.Wait()
			_ = group.Close()
		}()
	}

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		_ = producer.Close()
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
