package main

import (
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rintud72/medicine-shop-backend/cache"
	"github.com/rintud72/medicine-shop-backend/controller"
	kafkax "github.com/rintud72/medicine-shop-backend/kafka"
	"github.com/rintud72/medicine-shop-backend/mail"
	"github.com/rintud72/medicine-shop-backend/middleware"
	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/payment"
	"github.com/rintud72/medicine-shop-backend/repository"
	"github.com/rintud72/medicine-shop-backend/routes"
	"github.com/rintud72/medicine-shop-backend/search"
	"github.com/rintud72/medicine-shop-backend/service"
)

var DB *gorm.DB

func initDB() {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASS", "postgres")
	name := getEnv("DB_NAME", "medicineshop")

	dsn := "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=disable TimeZone=UTC"
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	if err := DB.AutoMigrate(&model.User{}, &model.Medicine{}, &model.Order{}); err != nil {
		log.Fatal("failed to migrate:", err)
	}

	log.Println("Connected to DB:", name)
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	initDB()
	cache.ConnectRedis(os.Getenv("REDIS_ADDR"))
	producer := kafkax.NewProducer(os.Getenv("KAFKA_BROKER"))

	jwtSecret := getEnv("JWT_SECRET", "verysecretkey")
	uploadDir := getEnv("UPLOAD_DIR", "./uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal("failed to create upload dir:", err)
	}

	var searchClient *search.ElasticClient
	if esURL := os.Getenv("ELASTICSEARCH_URL"); esURL != "" {
		searchClient = search.NewElasticClient(esURL)
		log.Println("Elasticsearch search enabled")
	} else {
		log.Println("ELASTICSEARCH_URL not set, search disabled")
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	mailer := mail.NewMailer(getEnv("SMTP_HOST", "smtp.gmail.com"), smtpPort, os.Getenv("EMAIL_USER"), os.Getenv("EMAIL_PASS"))

	orderRepo := repository.NewGormOrderRepository(DB)
	medicineRepo := repository.NewGormMedicineRepository(DB)

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	var gateway payment.Gateway
	if keyID != "" && keySecret != "" {
		gateway = payment.NewRazorpayGateway(keyID, keySecret)
		log.Println("Razorpay gateway initialized")
	} else {
		log.Println("Razorpay keys missing, online payment disabled")
	}

	cartService := service.NewCartService(orderRepo, medicineRepo)
	checkoutService := service.NewCheckoutService(orderRepo, medicineRepo, producer)
	paymentService := service.NewPaymentService(orderRepo, medicineRepo, gateway, keyID, keySecret, producer)

	userController := &controller.UserController{DB: DB, Mailer: mailer, JWTSecret: jwtSecret}
	medicineController := &controller.MedicineController{DB: DB, Search: searchClient, Producer: producer, UploadDir: uploadDir}
	cartController := &controller.CartController{Cart: cartService, Checkout: checkoutService}
	orderController := &controller.OrderController{Orders: orderRepo, Medicines: medicineRepo, Producer: producer}
	paymentController := &controller.PaymentController{Payments: paymentService}

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	app.Use(logger.New())

	authMiddleware := middleware.AuthRequired(jwtSecret)
	adminOnly := middleware.RoleRequired("admin")

	routes.RegisterUserRoutes(app, userController, authMiddleware)
	routes.RegisterMedicineRoutes(app, medicineController, authMiddleware, adminOnly)
	routes.RegisterCartRoutes(app, cartController, authMiddleware)
	routes.RegisterOrderRoutes(app, orderController, authMiddleware, adminOnly)
	routes.RegisterPaymentRoutes(app, paymentController, authMiddleware)

	app.Static("/uploads", uploadDir)

	port := getEnv("PORT", "5000")
	log.Println("HTTP server running on port " + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("fiber error:", err)
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
