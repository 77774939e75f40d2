package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_analyzer/internal/app/di"
	"stock_analyzer/internal/app/router"
	authadapters "stock_analyzer/internal/feature/auth/adapters"
	authhandler "stock_analyzer/internal/feature/auth/transport/handler"
	authusecase "stock_analyzer/internal/feature/auth/usecase"
	forecasthandler "stock_analyzer/internal/feature/forecast/transport/handler"
	forecastusecase "stock_analyzer/internal/feature/forecast/usecase"
	metricshandler "stock_analyzer/internal/feature/metrics/transport/handler"
	metricsusecase "stock_analyzer/internal/feature/metrics/usecase"
	priceshandler "stock_analyzer/internal/feature/prices/transport/handler"
	pricesusecase "stock_analyzer/internal/feature/prices/usecase"
	symboladapters "stock_analyzer/internal/feature/symbols/adapters"
	symbolhandler "stock_analyzer/internal/feature/symbols/transport/handler"
	symbolusecase "stock_analyzer/internal/feature/symbols/usecase"
	infradb "stock_analyzer/internal/platform/db"
	jwtmw "stock_analyzer/internal/platform/jwt"
	infraredis "stock_analyzer/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	symbolRepo := symboladapters.NewSymbolRepository(db)
	marketRepo := di.NewMarket(rdb)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	symbolUC := symbolusecase.NewSymbolUsecase(symbolRepo)
	pricesUC := pricesusecase.NewPricesUsecase(marketRepo, symbolUC)
	metricsUC := metricsusecase.NewMetricsUsecase(marketRepo, symbolUC)
	forecastUC := forecastusecase.NewForecastUsecase(marketRepo, symbolUC)

	// Seed the symbol catalog into the database
	catalog, err := symboladapters.LoadCatalog()
	if err != nil {
		log.Fatal("failed to load symbol catalog:", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := symbolUC.Seed(ctx, catalog); err != nil {
		cancel()
		log.Fatal("failed to seed symbol catalog:", err)
	}
	cancel()

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	symbolH := symbolhandler.NewSymbolHandler(symbolUC)
	pricesH := priceshandler.NewPricesHandler(pricesUC)
	metricsH := metricshandler.NewMetricsHandler(metricsUC)
	forecastH := forecasthandler.NewForecastHandler(forecastUC)

	router := router.NewRouter(authH, symbolH, pricesH, metricsH, forecastH)

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
