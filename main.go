package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/circusplayer/qjwc/catalog"
	"github.com/circusplayer/qjwc/controllers"
	"github.com/circusplayer/qjwc/database"
	"github.com/circusplayer/qjwc/middleware"
	"github.com/circusplayer/qjwc/storage"
	"github.com/circusplayer/qjwc/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ctx := context.Background()

	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	cache := catalog.NewCache(utils.CacheTTL())
	repo := catalog.NewRepository(database.Database(), cache)

	objStore, err := storage.NewFromEnv(ctx)
	if err != nil {
		log.Fatal("object storage: ", err)
	}
	imageValidator := storage.NewImageValidator()

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	r.GET("/products", controllers.GetProducts(repo))
	r.GET("/products/:idOrSlug", controllers.GetProduct(repo))
	r.GET("/categories", controllers.GetCategories(repo))
	r.GET("/categories/:id", controllers.GetCategory(repo))
	r.GET("/categories/slug/:slug", controllers.GetCategory(repo))
	r.POST("/quotes", controllers.CreateQuote(repo))

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.POST("/products", controllers.AddProduct(repo))
		admin.PATCH("/products/:id", controllers.UpdateProduct(repo))
		admin.DELETE("/products/:id", controllers.DeleteProduct(repo, objStore))
		admin.POST("/products/:id/image", controllers.UploadProductImage(repo, objStore, imageValidator))

		admin.POST("/categories", controllers.AddCategory(repo))
		admin.PATCH("/categories/:id", controllers.UpdateCategory(repo))
		admin.DELETE("/categories/:id", controllers.DeleteCategory(repo))

		admin.GET("/quotes", controllers.GetQuotes(repo))
		admin.GET("/quotes/:id", controllers.GetQuote(repo))
		admin.PATCH("/quotes/:id/status", controllers.UpdateQuoteStatus(repo))

		admin.POST("/users", controllers.CreateUser())
		admin.POST("/users/me/password", controllers.ChangeMyPassword())
	}

	r.Run()
}
