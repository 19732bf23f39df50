package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/config"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/db"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/menu"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/notify"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/ocr"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/order"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/storage"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/store"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/summary"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/voice"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"REDIS_ADDR",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── REDIS ─────────────────────────
	redisClient := config.MustInitRedis()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── EXTERNAL ENGINES ─────────────────────────
	engine := ocr.NewGeminiEngine()
	synthesizer := voice.NewClient()

	// ───────────────────────── MESSAGING (BEST-EFFORT) ─────────────────────────
	var publisher order.Publisher
	if os.Getenv("KAFKA_BROKER") != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "orders.ready"
		}
		publisher = notify.NewKafkaPublisher(config.NewKafkaWriter(topic))
	} else {
		log.Println("Note: KAFKA_BROKER not set, order-ready events disabled")
	}

	// ───────────────────────── CORE SERVICES ─────────────────────────
	menuStore := menu.NewRedisStore(redisClient, config.MenuTTL())
	menuService := menu.NewService(engine, menuStore, r2Client)
	menuHandler := menu.NewHandler(menuService)

	storeRepo := store.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)
	generator := summary.NewGenerator(config.CurrencyCode())

	orderService := order.NewService(
		menuStore,
		orderRepo,
		storeRepo,
		generator,
		synthesizer,
		r2Client,
		publisher,
		config.VoiceProfile(),
		config.DefaultTravelerLang(),
	)
	orderHandler := order.NewHandler(orderService)

	// ───────────────────────── ROUTES ─────────────────────────
	api := r.Group("/api")
	{
		api.POST("/menus/process", menuHandler.Process)
		api.GET("/menus/:session_id", menuHandler.Get)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders/:order_id", orderHandler.Get)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := config.Port()
	log.Printf("🚀 API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
