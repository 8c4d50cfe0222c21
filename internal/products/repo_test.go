package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db"
	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:products_test?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	shops := `
CREATE TABLE IF NOT EXISTS shops (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT,
  logo_url TEXT,
  banner_url TEXT,
  email TEXT,
  phone TEXT,
  address TEXT,
  enable_product_listings INTEGER NOT NULL DEFAULT 1,
  enable_custom_orders INTEGER NOT NULL DEFAULT 0,
  enable_reviews INTEGER NOT NULL DEFAULT 1,
  enable_contact INTEGER NOT NULL DEFAULT 1,
  enable_shipping INTEGER NOT NULL DEFAULT 0,
  enable_social_links INTEGER NOT NULL DEFAULT 0,
  primary_color TEXT NOT NULL DEFAULT '#3B82F6',
  secondary_color TEXT NOT NULL DEFAULT '#10B981',
  facebook_url TEXT,
  instagram_url TEXT,
  twitter_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  shop_id INTEGER NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  inventory INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	images := `
CREATE TABLE IF NOT EXISTS product_images (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  alt_text TEXT,
  position INTEGER NOT NULL DEFAULT 0
);`
	reviews := `
CREATE TABLE IF NOT EXISTS product_reviews (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  rating INTEGER NOT NULL,
  comment TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  UNIQUE (product_id, user_id)
);`
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)
	for _, stmt := range []string{users, shops, products, images, reviews} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

var fixtureSeq int

func seedShopAndUser(t *testing.T, conn *gorm.DB) (*models.Shop, *models.User) {
	t.Helper()

	fixtureSeq++
	user := &models.User{
		Username:     fmt.Sprintf("potter%d", fixtureSeq),
		Email:        fmt.Sprintf("potter%d@example.com", fixtureSeq),
		PasswordHash: "x",
	}
	require.NoError(t, conn.Create(user).Error)

	shop := &models.Shop{
		OwnerID:        user.ID,
		Name:           fmt.Sprintf("Shop %d", fixtureSeq),
		PrimaryColor:   "#3B82F6",
		SecondaryColor: "#10B981",
	}
	require.NoError(t, conn.Create(shop).Error)
	return shop, user
}

func TestDeleteProductCascadesImagesAndReviews(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	shop, user := seedShopAndUser(t, conn)

	product, err := repo.Create(context.Background(), CreateProductDTO{
		ShopID: shop.ID,
		Name:   "Vase",
		Price:  decimal.RequireFromString("39.99"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.CreateImage(context.Background(), &models.ProductImage{
		ProductID: product.ID, URL: "https://cdn.example.com/vase.jpg",
	}))
	require.NoError(t, repo.CreateReview(context.Background(), &models.ProductReview{
		ProductID: product.ID, UserID: user.ID, Rating: 5, Comment: "lovely",
	}))

	require.NoError(t, repo.Delete(context.Background(), product.ID))

	var imageCount, reviewCount int64
	require.NoError(t, conn.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount).Error)
	require.NoError(t, conn.Model(&models.ProductReview{}).Where("product_id = ?", product.ID).Count(&reviewCount).Error)
	assert.Zero(t, imageCount)
	assert.Zero(t, reviewCount)
}

func TestSecondProductReviewSameUserRejected(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	shop, user := seedShopAndUser(t, conn)

	product, err := repo.Create(context.Background(), CreateProductDTO{
		ShopID: shop.ID,
		Name:   "Bowl",
		Price:  decimal.RequireFromString("18.00"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.CreateReview(context.Background(), &models.ProductReview{
		ProductID: product.ID, UserID: user.ID, Rating: 3,
	}))
	err = repo.CreateReview(context.Background(), &models.ProductReview{
		ProductID: product.ID, UserID: user.ID, Rating: 5,
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}

func TestFindByIDPreloadsImagesInOrder(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	shop, _ := seedShopAndUser(t, conn)

	product, err := repo.Create(context.Background(), CreateProductDTO{
		ShopID: shop.ID,
		Name:   "Plate Set",
		Price:  decimal.RequireFromString("64.00"),
	})
	require.NoError(t, err)

	for _, pos := range []int{2, 0, 1} {
		require.NoError(t, repo.CreateImage(context.Background(), &models.ProductImage{
			ProductID: product.ID,
			URL:       fmt.Sprintf("https://cdn.example.com/p%d.jpg", pos),
			Position:  pos,
		}))
	}

	loaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Images, 3)
	for i, img := range loaded.Images {
		assert.Equal(t, i, img.Position)
	}
}
