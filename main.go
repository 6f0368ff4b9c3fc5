package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"

	"tiendafacil/server/internal/api"
	"tiendafacil/server/internal/config"
	"tiendafacil/server/internal/database"
	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/services"
	"tiendafacil/server/internal/storage"
	"tiendafacil/server/internal/utils"
)

func main() {
	// Variables de entorno desde .env si existe (en producción vienen del sistema)
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ Archivo .env no encontrado, se usan las variables del sistema")
	} else {
		log.Printf("✅ Variables de entorno cargadas desde .env")
	}

	cfg := config.Load()

	// Logueamos la URL de la base sin la contraseña
	if cfg.DatabaseURL != "" {
		safeURL := cfg.DatabaseURL
		if idx := strings.Index(safeURL, "@"); idx > 0 {
			if schemeIdx := strings.Index(safeURL, "://"); schemeIdx > 0 {
				safeURL = safeURL[:schemeIdx+3] + "***@" + safeURL[idx+1:]
			}
		}
		log.Printf("📋 DATABASE_URL configurada: %s", safeURL)
	}
	if cfg.KafkaBrokers != "" {
		log.Printf("📡 KAFKA_BROKERS configurado: %s", cfg.KafkaBrokers)
	} else {
		log.Printf("⚠️ KAFKA_BROKERS no configurado, se arranca sin mensajería")
	}

	// PostgreSQL
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ No se pudo conectar a PostgreSQL: %v", err)
	}
	defer database.ClosePostgres(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Falló la migración de tablas: %v", err)
	}
	log.Println("✅ Migraciones de base de datos completadas")

	// Redis (degradamos sin caché ni mensajería por sucursal si no está)
	redisClient, err := database.ConnectRedis(
		cfg.RedisURL,
		cfg.RedisSentinelAddrs,
		cfg.RedisMasterName,
	)
	var redisSvc *utils.RedisService
	if err != nil {
		log.Printf("⚠️ Redis no disponible: %v (se continúa sin caché)", err)
		redisClient = nil
	} else {
		redisSvc = utils.NewRedisService(redisClient)
	}
	defer database.CloseRedis(redisClient)

	// Productor de Kafka para los eventos de catálogo importado
	var catalogWriter *kafka.Writer
	if cfg.KafkaBrokers != "" {
		catalogWriter = kafka.NewWriter(kafka.WriterConfig{
			Brokers:  api.ParseKafkaBrokers(cfg.KafkaBrokers),
			Topic:    cfg.CatalogTopic,
			Balancer: &kafka.Hash{},
			Dialer:   api.CreateKafkaDialer(cfg.KafkaUsername, cfg.KafkaPassword, cfg.KafkaCACert),
		})
		defer catalogWriter.Close()
		log.Printf("✅ Productor de Kafka listo (topic: %s)", cfg.CatalogTopic)
	}

	// Servicios
	blobs := storage.NewPostgresBlobStore(db)
	cacheTTL := time.Duration(cfg.CacheTTLMinutes) * time.Minute

	catalogService := services.NewCatalogService(blobs, redisSvc, catalogWriter, cacheTTL)
	stockService := services.NewStockService(db, nil)
	tenantService := services.NewTenantService(db)
	branchService := services.NewBranchService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db)

	// Hub de WebSocket y aviso de catálogo actualizado
	go api.GlobalHub.Run()
	catalogService.SetNotifier(api.NewCatalogWSNotifier(api.GlobalHub))

	// Consumidor de ventas desde Kafka
	var salesConsumer *api.KafkaSalesConsumer
	if cfg.KafkaBrokers != "" {
		salesConsumer = api.NewKafkaSalesConsumer(
			cfg.KafkaBrokers, cfg.SalesTopic, stockService,
			cfg.KafkaUsername, cfg.KafkaPassword, cfg.KafkaCACert,
		)
		salesConsumer.Start()
		defer salesConsumer.Stop()
	} else {
		log.Println("⚠️ Consumidor de ventas no iniciado: sin brokers de Kafka")
	}

	// Controladores
	catalogController := api.NewCatalogController(catalogService)
	stockController := api.NewStockController(stockService)
	tenantController := api.NewTenantController(tenantService)
	branchController := api.NewBranchController(branchService)
	orderController := api.NewOrderController(orderService)
	paymentController := api.NewPaymentController(paymentService)

	var messageController *api.MessageController
	if redisSvc != nil {
		messageController = api.NewMessageController(redisSvc, api.GlobalHub)
		messageController.StartSubscriber(context.Background())
	} else {
		log.Println("⚠️ Mensajería por sucursal no iniciada: Redis no disponible")
	}

	// Router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), api.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	if redisSvc != nil {
		v1.Use(api.AuthMiddleware(redisSvc))
	} else {
		log.Println("⚠️ Redis no disponible: las rutas quedan sin validación de sesión")
	}
	{
		// Catálogo
		v1.POST("/catalog/upload", api.RequireRole(models.RolAdmin), catalogController.UploadCatalog)
		v1.GET("/catalog", catalogController.GetCatalog)
		v1.GET("/catalog/search", catalogController.SearchCatalog)

		// Stock
		v1.POST("/stock/apply", api.RequireRole(models.RolAdmin, models.RolStaff), stockController.ApplyStock)
		v1.GET("/stock/adjustments", stockController.GetAdjustments)

		// Comercios y miembros
		v1.POST("/tenants", tenantController.CreateTenant)
		v1.GET("/tenants/current", tenantController.GetCurrentTenant)
		v1.GET("/tenants/mine", tenantController.GetMyTenants)
		v1.GET("/members", tenantController.GetMembers)
		v1.POST("/members", api.RequireRole(models.RolAdmin), tenantController.AddMember)
		v1.PATCH("/members/:userId/role", api.RequireRole(models.RolAdmin), tenantController.UpdateMemberRole)
		v1.DELETE("/members/:userId", api.RequireRole(models.RolAdmin), tenantController.RemoveMember)

		// Sucursales
		v1.GET("/branches", branchController.GetBranches)
		v1.GET("/branches/:id", branchController.GetBranch)
		v1.POST("/branches", api.RequireRole(models.RolAdmin), branchController.CreateBranch)
		v1.PUT("/branches/:id", api.RequireRole(models.RolAdmin), branchController.UpdateBranch)
		v1.DELETE("/branches/:id", api.RequireRole(models.RolAdmin), branchController.DeleteBranch)

		// Pedidos a proveedor
		v1.POST("/orders", orderController.CreateOrder)
		v1.GET("/orders", orderController.GetOrders)
		v1.GET("/orders/:id", orderController.GetOrder)
		v1.PATCH("/orders/:id/status", orderController.UpdateOrderStatus)
		v1.POST("/orders/:id/items", orderController.AddOrderItem)
		v1.DELETE("/orders/:id", api.RequireRole(models.RolAdmin), orderController.DeleteOrder)

		// Pagos a proveedor
		v1.POST("/payments", api.RequireRole(models.RolAdmin, models.RolStaff), paymentController.CreatePayment)
		v1.GET("/payments", paymentController.GetPayments)
		v1.GET("/payments/debt", paymentController.GetTotalDebt)
		v1.PATCH("/payments/:id/paid", api.RequireRole(models.RolAdmin), paymentController.MarkPaid)
		v1.DELETE("/payments/:id", api.RequireRole(models.RolAdmin), paymentController.DeletePayment)

		// Mensajería por sucursal
		if messageController != nil {
			v1.POST("/messages", messageController.PostMessage)
			v1.GET("/ws/branch/:branchId", messageController.BranchWebSocket)
			v1.GET("/ws/tenant", messageController.TenantWebSocket)
		}
	}

	log.Printf("🚀 Servidor escuchando en el puerto %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ Error iniciando el servidor: %v", err)
	}
}
