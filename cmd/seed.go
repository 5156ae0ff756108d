package cmd

import (
	"context"
	"log"
	"os"

	"collecto-backend/config"
	"collecto-backend/internal/model"
	"collecto-backend/internal/repository"
	"collecto-backend/internal/security"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Наполняет базу стартовыми данными",
	Long: `Создаёт администратора и базовый набор категорий и брендов.
Повторный запуск ничего не дублирует`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		return runSeed(cmd.Context(), db)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context, db *config.Database) error {
	if err := seedAdmin(ctx, repository.NewUserRepository(db)); err != nil {
		return err
	}
	if err := seedCategories(ctx, repository.NewCategoryRepository(db)); err != nil {
		return err
	}
	if err := seedBrands(ctx, repository.NewBrandRepository(db)); err != nil {
		return err
	}

	log.Println("стартовые данные загружены")
	return nil
}

func seedAdmin(ctx context.Context, userRepo *repository.UserRepository) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@collecto.local"
	}

	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Println("администратор уже существует, пропускаем")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("ADMIN_PASSWORD не задан, используется пароль по умолчанию — смените его")
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	admin, err := userRepo.CreateUser(ctx, &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
	})
	if err != nil {
		return err
	}

	log.Printf("создан администратор %s", admin.Email)
	return nil
}

func seedCategories(ctx context.Context, categoryRepo *repository.CategoryRepository) error {
	_, total, err := categoryRepo.List(ctx, 1, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		log.Println("категории уже есть, пропускаем")
		return nil
	}

	categories := []model.Category{
		{Name: "Gunpla", Description: "Сборные модели Gundam производства Bandai, от компактных SD до детализированных MG"},
		{Name: "Resin", Description: "Модели из литьевой смолы ручной работы с высокой детализацией"},
		{Name: "Metal Build", Description: "Подвижные модели из металла и пластика премиального качества"},
		{Name: "Figma", Description: "Подвижные фигурки с гибкими шарнирами для любых поз"},
		{Name: "Statue", Description: "Крупноформатные статуи из смолы и стеклопластика"},
	}

	for i := range categories {
		categories[i].IsActive = true
		if _, err := categoryRepo.Create(ctx, &categories[i]); err != nil {
			return err
		}
	}

	log.Printf("создано %d категорий", len(categories))
	return nil
}

func seedBrands(ctx context.Context, brandRepo *repository.BrandRepository) error {
	_, total, err := brandRepo.List(ctx, 1, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		log.Println("бренды уже есть, пропускаем")
		return nil
	}

	brands := []model.Brand{
		{
			Name:        "Bandai Namco",
			Description: strPtr("Владелец бренда Gundam и единственный лицензированный производитель Gunpla"),
			Website:     strPtr("https://toy.bandai.co.jp/"),
			Country:     strPtr("Japan"),
		},
		{
			Name:        "Metal Build",
			Description: strPtr("Готовые модели из металла и премиального пластика, окрашены на заводе"),
			Website:     strPtr("https://tamashiiweb.com/item_brand/metal_build/"),
			Country:     strPtr("China"),
		},
		{
			Name:        "Robot Spirits",
			Description: strPtr("Компактные собранные фигурки с шарнирами, готовые к игре из коробки"),
			Website:     strPtr("https://tamashiiweb.com/item_brand/robot_tamashii/"),
			Country:     strPtr("China"),
		},
	}

	for i := range brands {
		brands[i].IsActive = true
		if _, err := brandRepo.Create(ctx, &brands[i]); err != nil {
			return err
		}
	}

	log.Printf("создано %d брендов", len(brands))
	return nil
}

func strPtr(s string) *string {
	return &s
}
