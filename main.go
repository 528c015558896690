package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/pastelaria-api/domain/auth"
	"github.com/example/pastelaria-api/domain/image"
	"github.com/example/pastelaria-api/domain/store"
	apimod "github.com/example/pastelaria-api/modules/api"
	cachemod "github.com/example/pastelaria-api/modules/cache"
	customermod "github.com/example/pastelaria-api/modules/customer"
	databasemod "github.com/example/pastelaria-api/modules/database"
	mailmod "github.com/example/pastelaria-api/modules/mail"
	ordermod "github.com/example/pastelaria-api/modules/order"
	productmod "github.com/example/pastelaria-api/modules/product"
	producttypemod "github.com/example/pastelaria-api/modules/producttype"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Load configuration from environment
	appName := getEnv("APP_NAME", "Pastelaria")
	httpPort := getEnvInt("HTTP_PORT", 8000)
	dbDriver := getEnv("DB_DRIVER", store.DriverSQLite)
	dbDSN := getEnv("DB_DSN", "./pastelaria.db")
	dbDebug := getEnvBool("DB_DEBUG", false)
	publicDir := getEnv("PUBLIC_DIR", "./public")
	imageMaxBytes := getEnvInt64("IMAGE_MAX_BYTES", image.DefaultMaxBytes)
	imageExtensions := getEnv("IMAGE_EXTENSIONS", "image/jpeg=jpg,image/png=png,image/gif=gif")
	redisAddr := getEnv("REDIS_ADDR", "")
	cachePrefix := getEnv("CACHE_PREFIX", "pastelaria:")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	mailDriver := getEnv("MAIL_DRIVER", "log")
	mailFrom := getEnv("MAIL_FROM", "no-reply@pastelaria.local")
	jwtSecret := getEnv("JWT_SECRET", "")

	extensions, err := image.ParseExtensions(imageExtensions)
	if err != nil {
		log.Printf("Warning: invalid IMAGE_EXTENSIONS %q: %v, using defaults", imageExtensions, err)
		extensions = image.DefaultExtensions()
	}

	mailPool := mailmod.DefaultPoolConfig()
	mailPool.NumWorkers = getEnvInt("MAIL_WORKERS", mailPool.NumWorkers)
	mailPool.QueueSize = getEnvInt("MAIL_QUEUE_SIZE", mailPool.QueueSize)
	mailPool.MaxRetries = getEnvInt("MAIL_MAX_RETRIES", mailPool.MaxRetries)

	log.Printf("=== %s API ===", appName)
	log.Printf("Database: %s (%s)", dbDriver, dbDSN)
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Public dir: %s", publicDir)
	log.Printf("Mail driver: %s", mailDriver)
	if redisAddr != "" {
		log.Printf("Redis cache: %s (prefix %s, ttl %s)", redisAddr, cachePrefix, cacheTTL)
	} else {
		log.Println("Redis cache: disabled")
	}

	db, err := store.Open(store.Config{Driver: dbDriver, DSN: dbDSN, Debug: dbDebug})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Create modules
	databaseModule := databasemod.NewModule(db, dbDriver)
	checks := []apimod.HealthChecker{databaseModule}

	var cacheModule *cachemod.Module
	loader := cachemod.NewLoader(nil)
	if redisAddr != "" {
		cacheModule = cachemod.NewModule(cachemod.Config{RedisAddr: redisAddr, Prefix: cachePrefix, TTL: cacheTTL})
		loader = cachemod.NewLoader(cacheModule.Cache())
		checks = append(checks, cacheModule)
	}

	images := image.NewIngester(image.Config{
		PublicDir:  publicDir,
		MaxBytes:   int(imageMaxBytes),
		Extensions: extensions,
	})

	customerModule := customermod.NewModule(db)
	productTypeModule := producttypemod.NewModule(db, loader)
	productModule := productmod.NewModule(db, productTypeModule.Service(), images, loader)
	orderModule := ordermod.NewModule(db)

	mailModule := mailmod.NewModule(mailmod.Config{From: mailFrom, AppName: appName, Pool: mailPool}, newMailer(mailDriver))
	checks = append(checks, mailModule)

	apiModule := apimod.NewModule(
		apimod.Config{Port: httpPort, AppName: appName, StorageRoot: images.StorageRoot(), AccessLog: true},
		apimod.Services{
			Customers:    customerModule.Service(),
			ProductTypes: productTypeModule.Service(),
			Products:     productModule.Service(),
			Orders:       orderModule.Service(),
		},
		auth.NewTokenManager(jwtSecret, appName, time.Hour),
		checks...,
	)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	app.Register(databaseModule)
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(customerModule)
	app.Register(productTypeModule)
	app.Register(productModule)
	app.Register(mailModule)
	app.Register(orderModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d/api", httpPort)
	log.Println("Resources: /api/customers, /api/product-types, /api/products, /api/orders")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				if err := app.Stop(ctx); err != nil {
					return err
				}
				return store.Close(db)
			},
		},
	)

	// Wait for shutdown signal and exit with appropriate code
	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func newMailer(driver string) mailmod.Mailer {
	switch driver {
	case "smtp":
		return mailmod.NewSMTPMailer(mailmod.SMTPConfig{
			Addr:     getEnv("SMTP_ADDR", "localhost:1025"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		})
	case "log":
		return mailmod.NewLogMailer()
	default:
		log.Printf("Warning: unknown MAIL_DRIVER %q, using log", driver)
		return mailmod.NewLogMailer()
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvInt64 returns environment variable as int64 or default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int64 value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
