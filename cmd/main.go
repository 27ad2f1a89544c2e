package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"TerritoryAtlas-App/internal/application"
	"TerritoryAtlas-App/internal/domain/repository"
	"TerritoryAtlas-App/internal/handler"
	"TerritoryAtlas-App/internal/infrastructure/cache"
	"TerritoryAtlas-App/internal/infrastructure/database"
	fsinfra "TerritoryAtlas-App/internal/infrastructure/firestore"
	repoImpl "TerritoryAtlas-App/internal/repository"
	"TerritoryAtlas-App/internal/usecase"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数:")
		fmt.Println("  - SUPABASE_URL")
		fmt.Println("  - SUPABASE_ANON_KEY")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	// テリトリーリポジトリの初期化
	// SUPABASE_DB_PASSWORD があればPostgreSQL直接接続、なければREST API経由
	territoriesRepo := setupTerritoriesRepository()

	// Firestoreジオメトリキャッシュの初期化（プロジェクトID未設定時はキャッシュなし）
	var geometryCache repository.TerritoryGeometryCacheRepository
	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT_ID"); projectID != "" {
		fsClient, err := fsinfra.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Printf("⚠️ Firestoreクライアント初期化失敗（ジオメトリキャッシュなしで起動）: %v", err)
		} else {
			defer fsClient.Close()
			geometryCache = repoImpl.NewFirestoreGeometryRepository(fsClient.GetClient())
		}
	} else {
		log.Printf("ℹ️ GOOGLE_CLOUD_PROJECT_ID未設定のためFirestoreキャッシュは無効")
	}

	// Redisレスポンスキャッシュの初期化（REDIS_HOST未設定時はキャッシュなし）
	redisClient := cache.NewRedisClientFromEnv()
	if redisClient != nil {
		if err := redisClient.HealthCheck(ctx); err != nil {
			log.Printf("⚠️ Redisヘルスチェック失敗（キャッシュなしで起動）: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			fmt.Println("✅ Redis connection successful!")
		}
	}

	// サービス・ユースケース・ハンドラーの組み立て
	territoriesService := application.NewTerritoriesService(territoriesRepo)
	geometryUseCase := usecase.NewTerritoryGeometryUseCase(territoriesRepo, geometryCache, redisClient)

	territoriesHandler := handler.NewTerritoriesHandler(territoriesService)
	geometryHandler := handler.NewTerritoryGeometryHandler(geometryUseCase)

	// ルーティングの設定
	r := gin.Default()
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "TerritoryAtlas-App"})
	})
	r.POST("/territories", territoriesHandler.CreateTerritory)
	r.GET("/territories", territoriesHandler.GetTerritoriesByBoundingBox)
	r.GET("/territories/:id", territoriesHandler.GetTerritoryDetail)
	r.GET("/territories/:id/geometry", geometryHandler.GetTerritoryGeometry)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("TerritoryAtlas-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}

// setupTerritoriesRepository 環境変数に応じてテリトリーリポジトリを構築する
func setupTerritoriesRepository() repository.TerritoriesRepository {
	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		fmt.Println("Initializing PostgreSQL client...")
		pgClient, err := database.NewPostgreSQLClient()
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		if err := pgClient.HealthCheck(); err != nil {
			log.Fatalf("PostgreSQLヘルスチェック失敗: %v", err)
		}
		fmt.Println("✅ PostgreSQL connection successful!")
		return repoImpl.NewPostgresTerritoriesRepository(pgClient)
	}

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}
	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ Supabase connection successful!")
	return repoImpl.NewSupabaseTerritoriesRepository(supabaseClient)
}
