package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collecto-backend/config"
	_ "collecto-backend/docs"
	"collecto-backend/internal/handler"
	"collecto-backend/internal/repository"
	"collecto-backend/internal/security"
	"collecto-backend/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Запускает HTTP сервер",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApplication(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runApplication(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.Cache)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(tokenRepo, userRepo, jwtService, &cfg.JWT)
	userService := service.NewUserService(userRepo, tokenRepo)
	addressService := service.NewAddressService(addressRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	brandService := service.NewBrandService(brandRepo, s3Service)
	productService := service.NewProductService(productRepo, categoryRepo, brandRepo, cacheRepo, s3Service)
	bannerService := service.NewBannerService(bannerRepo, s3Service)

	authHandler := handler.NewAuthenticationHandler(authService, &cfg.JWT)
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(addressService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	brandHandler := handler.NewBrandHandler(brandService)
	productHandler := handler.NewProductHandler(productService)
	bannerHandler := handler.NewBannerHandler(bannerService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService)
	setupUserRoutes(router, userHandler, jwtService)
	setupAddressRoutes(router, addressHandler, jwtService)
	setupCatalogRoutes(router, categoryHandler, brandHandler, productHandler, bannerHandler, jwtService)

	runServer(ctx, srv)
	return nil
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/refresh", h.RenewAccessToken)
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/me", h.GetProfile)
		r.Put("/me", h.UpdateProfile)
		r.Put("/me/password", h.ChangePassword)
	})

	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Use(security.RequireRole("admin"))
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
	})
}

func setupAddressRoutes(r chi.Router, h *handler.AddressHandler, jwtService *security.JWTService) {
	r.Route("/api/addresses", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/", h.ListAddresses)
		r.Post("/", h.CreateAddress)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", h.UpdateAddress)
			r.Delete("/", h.DeleteAddress)
			r.Put("/default", h.SetDefaultAddress)
		})
	})
}

func setupCatalogRoutes(
	r chi.Router,
	categoryHandler *handler.CategoryHandler,
	brandHandler *handler.BrandHandler,
	productHandler *handler.ProductHandler,
	bannerHandler *handler.BannerHandler,
	jwtService *security.JWTService,
) {
	// публичная витрина
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{id}", categoryHandler.GetCategory)
		r.Get("/brands", brandHandler.ListBrands)
		r.Get("/brands/{id}", brandHandler.GetBrand)
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Get("/banners", bannerHandler.ListActiveBanners)
	})

	// админка каталога
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Use(security.RequireRole("admin"))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.CreateCategory)
			r.Put("/{id}", categoryHandler.UpdateCategory)
			r.Put("/{id}/toggle", categoryHandler.ToggleCategoryActive)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Post("/", brandHandler.CreateBrand)
			r.Put("/{id}", brandHandler.UpdateBrand)
			r.Delete("/{id}", brandHandler.DeleteBrand)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Put("/{id}/toggle", productHandler.ToggleProductActive)
			r.Put("/{id}/images/{imageId}/primary", productHandler.SetPrimaryImage)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/", bannerHandler.ListBanners)
			r.Get("/{id}", bannerHandler.GetBanner)
			r.Post("/", bannerHandler.CreateBanner)
			r.Put("/{id}", bannerHandler.UpdateBanner)
			r.Put("/{id}/toggle", bannerHandler.ToggleBannerActive)
			r.Delete("/{id}", bannerHandler.DeleteBanner)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
