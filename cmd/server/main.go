package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"supplier-core/internal/adapter/api"
	"supplier-core/internal/adapter/auth"
	"supplier-core/internal/adapter/client"
	"supplier-core/internal/adapter/store"
	"supplier-core/internal/domain/entity"
	"supplier-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	redisAddr := os.Getenv("REDIS_ADDR")
	qdrantHost := os.Getenv("QDRANT_HOST")
	qdrantPortStr := os.Getenv("QDRANT_PORT")
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	location := os.Getenv("GOOGLE_CLOUD_LOCATION")
	tokenLimitStr := os.Getenv("USER_TOKEN_LIMIT")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key"
	}
	serviceKey := os.Getenv("SERVICE_KEY")

	qdrantPort, _ := strconv.Atoi(qdrantPortStr)
	tokenLimit, _ := strconv.Atoi(tokenLimitStr)

	// Postgres for the product catalog and the chat message log
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := db.AutoMigrate(&entity.Product{}, &entity.ChatMessage{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	// Redis for usage budgets
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	// Qdrant for semantic product retrieval
	qClient, err := qdrant.NewClient(&qdrant.Config{
		Host: qdrantHost,
		Port: qdrantPort,
	})
	if err != nil {
		log.Fatalf("failed to connect to qdrant: %v", err)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}

	primaryModel := client.NewGeminiClient(genaiClient, "gemini-2.5-flash")
	fallbackModel := client.NewGeminiClient(genaiClient, "gemini-1.5-flash")
	provider := usecase.NewResilientProvider(primaryModel, fallbackModel)

	embedder := client.NewEmbedder(genaiClient, "text-embedding-004")
	extractor := client.NewGeminiTermExtractor(genaiClient, "gemini-2.5-flash")
	scorer := client.NewGeminiConfidenceScorer(genaiClient, "gemini-2.5-flash")

	productIndex := store.NewQdrantProductIndex(qClient, os.Getenv("QDRANT_COLLECTION"))
	if err := productIndex.InitCollection(ctx, 768); err != nil {
		log.Fatalf("failed to init qdrant collection: %v", err)
	}

	products := store.NewPostgresProductStore(db)
	messages := store.NewPostgresMessageStore(db)
	limiter := store.NewRedisLimiter(rdb, tokenLimit)

	pipeline := usecase.NewSearchPipeline(limiter, extractor, embedder, productIndex, products, provider, scorer)

	preferences := usecase.NewPreferenceStore()
	enhancer := usecase.NewQueryEnhancer(preferences, pipeline, messages)
	comparisons := usecase.NewComparisonEngine(products)
	analytics := usecase.NewAnalyticsAggregator(messages)

	tokens := auth.NewTokenService(jwtSecret)

	go warmUp(embedder, provider, products, productIndex)

	app := fiber.New(fiber.Config{
		AppName: "Supplier-AI Backend",
	})

	handler := api.NewHandler(enhancer, comparisons, analytics, tokens, serviceKey)
	api.SetupRouter(app, handler, tokens)

	log.Printf("Supplier-AI Backend running on port %s", os.Getenv("PORT"))
	log.Fatal(app.Listen(":" + os.Getenv("PORT")))
}

// warmUp pre-warms the model instances and refreshes the semantic product
// index so the first real query does not pay the cold-start cost.
func warmUp(embedder *client.Embedder, provider *usecase.ResilientProvider, products *store.PostgresProductStore, index *store.QdrantProductIndex) {
	warmCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := embedder.CreateEmbedding(warmCtx, "warmup"); err != nil {
		log.Printf("[WARMER] embedder warm-up failed: %v", err)
	}
	if _, err := provider.Generate(warmCtx, "."); err != nil {
		log.Printf("[WARMER] provider warm-up failed: %v", err)
	}

	catalog, err := products.FetchAll(warmCtx)
	if err != nil {
		log.Printf("[WARMER] catalog load failed, skipping re-index: %v", err)
		return
	}
	indexed := 0
	for _, p := range catalog {
		text := p.Name + " " + p.Brand + " " + p.Category + " " + p.Description
		vector, err := embedder.CreateEmbedding(warmCtx, text)
		if err != nil {
			log.Printf("[WARMER] embedding for product %s failed: %v", p.ID, err)
			continue
		}
		if err := index.Index(warmCtx, p, vector); err != nil {
			log.Printf("[WARMER] index upsert for product %s failed: %v", p.ID, err)
			continue
		}
		indexed++
	}
	log.Printf("[WARMER] pre-warm complete, %d/%d products indexed", indexed, len(catalog))
}
