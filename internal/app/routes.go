package app

import (
	"github.com/KevinDwiRizky/library-backend/internal/config"
	"github.com/KevinDwiRizky/library-backend/internal/handlers"
	"github.com/KevinDwiRizky/library-backend/internal/repo"
	"github.com/KevinDwiRizky/library-backend/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/mongo"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *mongo.Database) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api/v1")

	bookRepo := repo.NewMongoBookRepo(db)
	memberRepo := repo.NewMongoMemberRepo(db)
	borrowingRepo := repo.NewMongoBorrowingRepo(db)

	memberHandler := handlers.NewMemberHandler(service.NewMemberService(memberRepo))
	bookHandler := handlers.NewBookHandler(service.NewBookService(bookRepo))
	borrowingHandler := handlers.NewBorrowingHandler(
		service.NewBorrowingService(borrowingRepo, memberRepo, bookRepo))

	RegisterAPIRoutes(api, memberHandler, bookHandler, borrowingHandler)
}

// RegisterAPIRoutes mounts the member, book, and borrowing endpoints on
// the given group.
func RegisterAPIRoutes(api *gin.RouterGroup, m *handlers.MemberHandler, b *handlers.BookHandler, br *handlers.BorrowingHandler) {
	api.GET("/member", m.List)
	api.POST("/member", m.Create)
	api.PUT("/member/:id", m.Update)
	api.DELETE("/member/:id", m.Delete)

	api.GET("/book", b.List)
	api.POST("/book", b.Create)
	api.PUT("/book/:id", b.Update)
	api.DELETE("/book/:id", b.Delete)

	api.GET("/borrowing", br.List)
	api.GET("/borrowing/search", br.Search)
	api.GET("/borrowing/:id", br.GetByID)
	api.POST("/borrowing", br.Borrow)
	api.PUT("/borrowing/return/:id", br.Return)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Library API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
