package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fulfillment-service/app/config"
	"github.com/fulfillment-service/app/controllers"
	"github.com/fulfillment-service/app/services"
	"github.com/fulfillment-service/internal/carrier"
	"github.com/fulfillment-service/routes"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Shipping Fulfillment Service")

	// 3. Kết nối Redis cho L2 reference cache (optional)
	redisClient := initRedis(logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis", zap.Error(err))
			}
		}()
	}

	// 4. Khởi tạo carrier client
	carrierClient := carrier.NewClient(carrier.Config{
		BaseURL: config.C.Carrier.BaseURL,
		Token:   config.C.Carrier.Token,
		ShopID:  config.C.Carrier.ShopID,
		Timeout: config.CarrierTimeout(),
	}, logger)

	// 5. Bọc reference client bằng cache (LRU L1 + Redis L2)
	cachedClient, err := carrier.NewCachedClient(carrierClient, redisClient, config.C.Cache.L1Size, config.CacheTTL(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize reference cache", zap.Error(err))
	}

	// 6. Khởi tạo services
	suggestionService := services.NewSuggestionService(config.C.Suggest.TopK, config.C.Suggest.MinScore, logger)
	formService := services.NewFormService(cachedClient, carrierClient, suggestionService, config.C.Defaults, logger)

	// 7. Khởi tạo controllers
	fulfillmentController := controllers.NewFulfillmentController(formService, logger)

	// 8. Khởi tạo Gin router
	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 9. Thiết lập routes
	routes.SetupAllRoutes(router, fulfillmentController)

	// 10. Khởi động server
	port := getEnv("APP_PORT", "8080")
	logger.Info("Shipping Fulfillment Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig load configuration từ file và env vars
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")

	viper.AutomaticEnv()

	configPath := ""
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	} else {
		configPath = viper.ConfigFileUsed()
	}

	if err := config.Load(configPath); err != nil {
		log.Printf("Warning: Cannot load config %s: %v", configPath, err)
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initRedis khởi tạo kết nối Redis. Không cấu hình thì chạy với L1 thôi.
func initRedis(logger *zap.Logger) *redis.Client {
	redisURL := config.C.Cache.RedisURL
	if redisURL == "" {
		logger.Info("Redis not configured, reference cache runs with L1 only")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Fatal("Invalid REDIS_URL", zap.Error(err))
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to ping Redis", zap.Error(err))
	}

	logger.Info("Connected to Redis", zap.String("url", redisURL))
	return client
}

// getEnv lấy environment variable với default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
