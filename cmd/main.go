package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	domainRepo "MachiNavi-App/internal/domain/repository"
	"MachiNavi-App/internal/domain/service"
	"MachiNavi-App/internal/handler"
	"MachiNavi-App/internal/infrastructure/database"
	fsinfra "MachiNavi-App/internal/infrastructure/firestore"
	repoImpl "MachiNavi-App/internal/repository"
	"MachiNavi-App/internal/usecase"
)

const snapshotMaxAge = 10 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: FIRESTORE_PROJECT_ID")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	ctx := context.Background()

	fmt.Println("Initializing Firestore client...")
	firestoreClient, err := fsinfra.NewFirestoreClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer firestoreClient.Close()

	eventsRepo := repoImpl.NewFirestoreEventsRepository(firestoreClient.GetClient())

	// ランドマークはFirestoreが既定。PLACES_BACKEND=postgresでSQL構成に切り替え
	var placesRepo domainRepo.PlacesRepository
	if os.Getenv("PLACES_BACKEND") == "postgres" {
		fmt.Println("Initializing PostgreSQL client...")
		postgresClient, err := database.NewPostgreSQLClientWithRetry(5, 2*time.Second)
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		defer postgresClient.Close()
		placesRepo = repoImpl.NewPostgresPlacesRepository(postgresClient)
	} else {
		placesRepo = repoImpl.NewFirestorePlacesRepository(firestoreClient.GetClient())
	}

	// コアサービスの組み立て
	recurrenceResolver := service.NewRecurrenceResolver()
	locationResolver := service.NewLocationResolver(placesRepo)
	aggregator := service.NewEventAggregator(recurrenceResolver, locationResolver)
	icsExporter := service.NewICSExporter()

	snapshot := usecase.NewEventSnapshotProvider(eventsRepo, snapshotMaxAge)
	markersUseCase := usecase.NewMapMarkersUseCase(snapshot, placesRepo, aggregator, recurrenceResolver)
	calendarUseCase := usecase.NewCalendarUseCase(snapshot, locationResolver, aggregator, icsExporter)

	// 初回スナップショット取得。失敗しても起動は続け、リクエスト時に再試行する
	if err := snapshot.Refresh(ctx); err != nil {
		log.Printf("⚠️ 初回スナップショット取得に失敗: %v", err)
	}

	// 定期更新
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 5m", func() {
		if err := snapshot.Refresh(context.Background()); err != nil {
			log.Printf("⚠️ 定期スナップショット更新に失敗: %v", err)
		}
	}); err != nil {
		log.Fatalf("スケジューラ登録失敗: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	markersHandler := handler.NewMarkersHandler(markersUseCase)
	calendarHandler := handler.NewCalendarHandler(calendarUseCase)

	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler)
		api.GET("/map/markers", markersHandler.GetMapMarkers)
		api.GET("/map/landmarks", markersHandler.GetLandmarks)
		api.GET("/calendar/events", calendarHandler.GetCalendarEvents)
		api.GET("/calendar/marked", calendarHandler.GetMarkedDates)
		api.GET("/calendar/feed.ics", calendarHandler.GetICSFeed)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("MachiNavi-App server starting on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("サーバー起動失敗: %v", err)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "MachiNavi-App"})
}
