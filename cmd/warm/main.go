package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_analyzer/internal/app/di"
	pricesusecase "stock_analyzer/internal/feature/prices/usecase"
	symboladapters "stock_analyzer/internal/feature/symbols/adapters"
	infradb "stock_analyzer/internal/platform/db"
	infraredis "stock_analyzer/internal/platform/redis"
	"stock_analyzer/internal/platform/scheduler"
	"stock_analyzer/internal/shared/ratelimiter"
)

func main() {
	db := infradb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Warming will only exercise the provider.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	marketRepo := di.NewMarket(rdb)
	symbolRepo := symboladapters.NewSymbolRepository(db)
	rl := ratelimiter.NewRateLimiter(8, time.Minute)
	warmUC := pricesusecase.NewWarmUsecase(marketRepo, rl)

	warm := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()

		symbols, err := symbolRepo.ListActiveCodes(ctx)
		if err != nil {
			return err
		}
		return warmUC.WarmAll(ctx, symbols)
	}

	// With WARM_CRON set the warmer keeps running on that schedule;
	// otherwise it warms once and exits.
	spec := os.Getenv("WARM_CRON")
	if spec == "" {
		if err := warm(context.Background()); err != nil {
			log.Fatal(err)
		}
		log.Println("warm ok")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(ctx)
	if err := sched.Register(spec, "warm", warm); err != nil {
		log.Fatal(err)
	}
	sched.Start()

	<-ctx.Done()
	sched.Stop()
}
