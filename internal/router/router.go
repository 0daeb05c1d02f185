package router

import (
	"time"

	"fabcost/internal/config"
	"fabcost/internal/handler"
	"fabcost/internal/middleware"
	"fabcost/internal/model"
	"fabcost/internal/repository"
	"fabcost/internal/service"
	"fabcost/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	historyRepo := repository.NewCostHistoryRepository(db)
	bomRepo := repository.NewBOMRepository(db)
	assemblyRepo := repository.NewAssemblyRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	supplierPrices := service.NewSupplierPrices(historyRepo)
	resolver := service.NewCostResolver(historyRepo, catalogRepo, supplierPrices)

	// Dispatcher is injected into the settings service so a labour-rate
	// change triggers a background recost sweep.
	settingsSvc := service.NewSettingsService(settingsRepo, rdb, dispatcher)

	catalogSvc := service.NewCatalogService(catalogRepo, bomRepo)
	historySvc := service.NewCostHistoryService(historyRepo)
	pricingSvc := service.NewPricingService(resolver, supplierPrices, historyRepo, catalogRepo)
	costingSvc := service.NewCostingService(resolver, bomRepo, assemblyRepo, settingsSvc)
	bomSvc := service.NewBOMService(bomRepo, assemblyRepo)
	assemblySvc := service.NewAssemblyService(assemblyRepo, bomRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	templateSvc := service.NewTemplateService(templateRepo)
	estimateSvc := service.NewEstimateService(templateRepo, resolver, settingsSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	historyH := handler.NewCostHistoryHandler(historySvc)
	pricingH := handler.NewPricingHandler(pricingSvc)
	costingH := handler.NewCostingHandler(costingSvc, assemblyRepo, cfg.PDFStoragePath)
	bomH := handler.NewBOMHandler(bomSvc)
	assembliesH := handler.NewAssembliesHandler(assemblySvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	templatesH := handler.NewTemplatesHandler(templateSvc)
	estimatesH := handler.NewEstimatesHandler(estimateSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	read := middleware.RequireRole("estimator", "supervisor", "administrator")
	write := middleware.RequireRole("supervisor", "administrator")
	admin := middleware.RequireRole("administrator")

	v1 := r.Group("/v1", jwtMW)
	{
		// Catalogs — one handler, three kinds
		registerCatalog := func(path string, kind model.ItemKind) {
			v1.GET("/"+path, read, catalogH.List(kind))
			v1.GET("/"+path+"/:id", read, catalogH.Get(kind))
			v1.GET("/"+path+"/:id/cost", read, pricingH.ItemCost)
			v1.GET("/"+path+"/:id/forecast", read, pricingH.ItemForecast)
			v1.GET("/"+path+"/:id/lowest-quote", read, pricingH.LowestQuote)
			v1.GET("/"+path+"/:id/cost-history", read, historyH.List)
			v1.POST("/"+path, write, catalogH.Create(kind))
			v1.PUT("/"+path+"/:id", write, catalogH.Update(kind))
			v1.DELETE("/"+path+"/:id", write, catalogH.Delete(kind))
			v1.POST("/"+path+"/:id/cost-history", write, historyH.Add)
		}
		registerCatalog("parts", model.KindPart)
		registerCatalog("fasteners", model.KindFastener)
		registerCatalog("electrical", model.KindElectrical)

		v1.DELETE("/cost-history/:id", write, historyH.Delete)

		// Products
		v1.GET("/products", read, assembliesH.ListProducts)
		v1.GET("/products/:id", read, assembliesH.GetProduct)
		v1.GET("/products/:id/cost", read, costingH.ProductCost)
		v1.GET("/products/:id/cost/pdf", read, costingH.ProductCostPDF)
		v1.GET("/products/:id/bom", read, bomH.Get(model.BOMOwnerProduct))
		prods := v1.Group("/products", write)
		{
			prods.POST("", assembliesH.CreateProduct)
			prods.PUT("/:id", assembliesH.UpdateProduct)
			prods.DELETE("/:id", assembliesH.DeleteProduct)
			prods.PUT("/:id/bom", bomH.Put(model.BOMOwnerProduct))
			prods.POST("/:id/bom/lines", bomH.UpsertLine(model.BOMOwnerProduct))
			prods.DELETE("/:id/bom/lines", bomH.RemoveLine(model.BOMOwnerProduct))
		}

		// Sub-assemblies
		v1.GET("/sub-assemblies", read, assembliesH.ListSubAssemblies)
		v1.GET("/sub-assemblies/:id", read, assembliesH.GetSubAssembly)
		v1.GET("/sub-assemblies/:id/cost", read, costingH.SubAssemblyCost)
		v1.GET("/sub-assemblies/:id/bom", read, bomH.Get(model.BOMOwnerSubAssembly))
		subs := v1.Group("/sub-assemblies", write)
		{
			subs.POST("", assembliesH.CreateSubAssembly)
			subs.PUT("/:id", assembliesH.UpdateSubAssembly)
			subs.DELETE("/:id", assembliesH.DeleteSubAssembly)
			subs.PUT("/:id/bom", bomH.Put(model.BOMOwnerSubAssembly))
			subs.POST("/:id/bom/lines", bomH.UpsertLine(model.BOMOwnerSubAssembly))
			subs.DELETE("/:id/bom/lines", bomH.RemoveLine(model.BOMOwnerSubAssembly))
		}

		// Suppliers
		v1.GET("/suppliers", read, suppliersH.List)
		v1.GET("/suppliers/:id", read, suppliersH.Get)
		suppliers := v1.Group("/suppliers", write)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Deactivate)
		}

		// Design templates + estimator
		v1.GET("/templates", read, templatesH.List)
		v1.GET("/templates/:id", read, templatesH.Get)
		templates := v1.Group("/templates", write)
		{
			templates.POST("", templatesH.Create)
			templates.PUT("/:id", templatesH.Update)
			templates.DELETE("/:id", templatesH.Delete)
		}
		v1.POST("/estimates", read, estimatesH.Estimate)

		// Settings — administrator only
		v1.GET("/settings/labour-rate", read, settingsH.GetLabourRate)
		v1.PUT("/settings/labour-rate", admin, settingsH.UpdateLabourRate)

		// Users — administrator only
		users := v1.Group("/users", admin)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
