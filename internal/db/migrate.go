package db

import (
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models 마이그레이션 대상 모델 목록
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.MetalRate{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := Seed(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed 상품 목록과 데모 계정을 생성한다. 이미 있는 행은 건드리지 않는다.
func Seed(db *gorm.DB) error {
	logger.Info("Seeding initial data...")

	if err := seedCatalog(db); err != nil {
		logger.Error("Failed to seed catalog", err)
		return err
	}
	if err := seedUsers(db); err != nil {
		logger.Error("Failed to seed users", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCatalog(db *gorm.DB) error {
	products := CatalogProducts()
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products)
	if result.Error != nil {
		return result.Error
	}
	logger.Info("Catalog seeded", map[string]interface{}{
		"inserted": result.RowsAffected,
		"total":    len(products),
	})
	return nil
}

// demoUser 데모 로그인 계정
type demoUser struct {
	email    string
	password string
	name     string
	role     model.UserRole
}

var demoUsers = []demoUser{
	{email: "user@example.com", password: "password123", name: "John Doe", role: model.RoleUser},
	{email: "admin@jrbgold.com", password: "admin123", name: "Admin User", role: model.RoleAdmin},
}

func seedUsers(db *gorm.DB) error {
	for _, du := range demoUsers {
		var count int64
		if err := db.Model(&model.User{}).Where("email = ?", du.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &model.User{
			Email:        du.email,
			PasswordHash: string(hash),
			Name:         du.name,
			Role:         du.role,
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		logger.Info("Demo user created", map[string]interface{}{
			"email": du.email,
			"role":  du.role,
		})
	}
	return nil
}
