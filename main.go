package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("[DB] [WARN] product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("[DB] [WARN] user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("[DB] [WARN] order index warning: %v", err)
	}
	if err := database.EnsureContentIndexes(db); err != nil {
		log.Printf("[DB] [WARN] content index warning: %v", err)
	}

	listingCache := cache.New(config.AppEnv.RedisAddr, config.AppEnv.ListingCacheTTL)

	secret := config.AppEnv.JWTSecret
	tokenTTL := config.AppEnv.AccessTokenTTL

	r := gin.Default()
	r.Use(middleware.Metrics())

	r.GET("/healthz", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/register", handlers.Register(db, secret, tokenTTL))
	r.POST("/auth/login",
		middleware.RateLimit(config.AppEnv.LoginRatePerMin),
		handlers.Login(db, secret, tokenTTL),
	)
	r.GET("/auth/me", middleware.UserAuth(secret), handlers.GetMe(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/best-sellers", handlers.GetBestSellers(db, listingCache))
	r.GET("/products/deals", handlers.GetSpecialDeals(db, listingCache))
	r.GET("/products/:slugOrId", handlers.GetProduct(db))
	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/content/hero-sections", handlers.GetActiveHeroSections(db))

	r.POST("/checkout/quote", handlers.QuoteCheckout(db))

	user := r.Group("/me")
	user.Use(middleware.UserAuth(secret))
	{
		user.GET("/addresses", handlers.GetMyAddresses(db))
		user.POST("/addresses", handlers.AddMyAddress(db))
		user.DELETE("/addresses/:addressId", handlers.DeleteMyAddress(db))

		user.POST("/orders", handlers.CreateOrder(db))
		user.GET("/orders", handlers.GetMyOrders(db))
	}

	admin := r.Group("/superadmin/api")
	admin.Use(middleware.SuperAdminAuth(secret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.GET("/products/:id", handlers.GetProductByID(db))
		admin.POST("/products", handlers.CreateProduct(db, listingCache))
		admin.PUT("/products/:id", handlers.UpdateProduct(db, listingCache))
		admin.PATCH("/products/:id/status", handlers.ToggleProductStatus(db, listingCache))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db, listingCache))

		admin.GET("/hero-sections", handlers.GetAllHeroSections(db))
		admin.GET("/hero-sections/:id", handlers.GetHeroSectionByID(db))
		admin.POST("/hero-sections", handlers.CreateHeroSection(db))
		admin.PUT("/hero-sections/:id", handlers.UpdateHeroSection(db))
		admin.DELETE("/hero-sections/:id", handlers.DeleteHeroSection(db))

		admin.GET("/projects", handlers.GetAllProjects(db))
		admin.GET("/projects/:id", handlers.GetProjectByID(db))
		admin.POST("/projects", handlers.CreateProject(db))
		admin.PUT("/projects/:id", handlers.UpdateProject(db))
		admin.DELETE("/projects/:id", handlers.DeleteProject(db))

		admin.GET("/about-contact", handlers.GetAllAboutContacts(db))
		admin.GET("/about-contact/:id", handlers.GetAboutContactByID(db))
		admin.POST("/about-contact", handlers.CreateAboutContact(db))
		admin.PUT("/about-contact/:id", handlers.UpdateAboutContact(db))
		admin.DELETE("/about-contact/:id", handlers.DeleteAboutContact(db))

		admin.GET("/contact-hero", handlers.GetContactHero(db))
		admin.PUT("/contact-hero", handlers.UpsertContactHero(db))

		admin.GET("/future-goals", handlers.GetAllFutureGoals(db))
		admin.GET("/future-goals/:id", handlers.GetFutureGoalByID(db))
		admin.POST("/future-goals", handlers.CreateFutureGoal(db))
		admin.PUT("/future-goals/:id", handlers.UpdateFutureGoal(db))
		admin.DELETE("/future-goals/:id", handlers.DeleteFutureGoal(db))

		admin.GET("/roadmap-phases", handlers.GetAllRoadmapPhases(db))
		admin.GET("/roadmap-phases/:id", handlers.GetRoadmapPhaseByID(db))
		admin.POST("/roadmap-phases", handlers.CreateRoadmapPhase(db))
		admin.PUT("/roadmap-phases/:id", handlers.UpdateRoadmapPhase(db))
		admin.DELETE("/roadmap-phases/:id", handlers.DeleteRoadmapPhase(db))

		admin.GET("/video-testimonials", handlers.GetAllVideoTestimonials(db))
		admin.GET("/video-testimonials/:id", handlers.GetVideoTestimonialByID(db))
		admin.POST("/video-testimonials", handlers.CreateVideoTestimonial(db))
		admin.PUT("/video-testimonials/:id", handlers.UpdateVideoTestimonial(db))
		admin.DELETE("/video-testimonials/:id", handlers.DeleteVideoTestimonial(db))

		admin.GET("/users", handlers.GetAllUsers(db))
		admin.GET("/users/:id", handlers.GetUserByID(db))
		admin.POST("/users", handlers.CreateUser(db))
		admin.PUT("/users/:id", handlers.UpdateUser(db))
		admin.DELETE("/users/:id", handlers.DeleteUser(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
