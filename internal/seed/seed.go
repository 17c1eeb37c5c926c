// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/moderation"
	"github.com/baytalsudani/console/internal/user"
)

type Merchant struct {
	Username string
	Email    string
	Password string
}

// Merchants are the demonstration accounts.
var Merchants = []Merchant{
	{Username: "ahmed_store", Email: "ahmed@example.com", Password: "password123"},
	{Username: "fatima_shop", Email: "fatima@example.com", Password: "password123"},
	{Username: "omar_market", Email: "omar@example.com", Password: "password123"},
}

type listing struct {
	name        string
	description string
	price       string
}

func productsFor(username string) []listing {
	return []listing{
		{"منتج أ من " + username, "منتج عالي الجودة", "25.50"},
		{"منتج ب من " + username, "منتج مميز بسعر منافس", "45.75"},
		{"منتج ج من " + username, "منتج جديد ومبتكر", "30.00"},
	}
}

func offeringsFor(username string) []listing {
	return []listing{
		{"خدمة التوصيل من " + username, "خدمة توصيل سريعة ومضمونة", "10.00"},
		{"خدمة الصيانة من " + username, "خدمة صيانة احترافية", "50.00"},
	}
}

var sampleAds = []moderation.Ad{
	{Title: "إعلان تجريبي 1", Description: "هذا إعلان تجريبي للمنصة", IsActive: true},
	{Title: "عروض خاصة", Description: "تسوق الآن واحصل على خصومات مميزة", IsActive: true},
	{Title: "منتجات جديدة", Description: "اكتشف أحدث المنتجات في المنصة", IsActive: true},
}

var sampleJobs = []moderation.Job{
	{Title: "مطور ويب", Description: "مطلوب مطور ويب خبرة 3 سنوات", Company: "شركة التقنية", Location: "الخرطوم", Salary: "2000-4000 جنيه", IsActive: true},
	{Title: "مصمم جرافيك", Description: "مطلوب مصمم جرافيك محترف", Company: "وكالة الإبداع", Location: "أم درمان", Salary: "1500-3000 جنيه", IsActive: true},
	{Title: "محاسب", Description: "مطلوب محاسب خبرة في النظم المالية", Company: "شركة المحاسبة", Location: "بحري", Salary: "2500-5000 جنيه", IsActive: true},
}

const (
	sampleOrders   = 2
	sampleQuantity = 2
)

type Summary struct {
	Merchants int
	Skipped   int
	Ads       int
	Jobs      int
}

// Provisioner fills a local database with demonstration data.
type Provisioner struct {
	db *sqlx.DB
}

func NewProvisioner(db *sqlx.DB) *Provisioner {
	return &Provisioner{db: db}
}

// Run provisions every merchant, then the sample ads and jobs. Existing
// merchants are skipped, so running it twice is harmless.
func (p *Provisioner) Run(ctx context.Context, merchants []Merchant) (Summary, error) {
	var sum Summary

	for _, m := range merchants {
		created, err := p.Merchant(ctx, m)
		if err != nil {
			return sum, fmt.Errorf("provision %s: %w", m.Username, err)
		}
		if created {
			sum.Merchants++
		} else {
			sum.Skipped++
		}
	}

	ads, jobs, err := p.Listings(ctx)
	if err != nil {
		return sum, err
	}
	sum.Ads, sum.Jobs = ads, jobs

	return sum, nil
}

// Merchant creates the account together with its store, products, services
// and sample orders as one transaction. It reports false without writing
// anything when the username or email is already registered.
func (p *Provisioner) Merchant(ctx context.Context, m Merchant) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(m.Email))
	created := false

	err := core.InTx(ctx, p.db, func(tx *sqlx.Tx) error {
		users := user.NewRepository(tx, nil)

		exists, err := users.ExistsByUsernameOrEmail(ctx, m.Username, email)
		if err != nil || exists {
			return err
		}

		account := &user.User{
			Username: m.Username,
			Email:    &email,
			Role:     user.RoleMerchant,
			IsActive: true,
		}
		if err := users.Create(ctx, account, m.Password); err != nil {
			return err
		}

		repos := catalog.NewTxRepositories(tx)

		store, _, err := repos.Stores.EnsureForMerchant(ctx, &catalog.Store{
			MerchantID:  account.ID,
			Name:        "متجر " + m.Username,
			Description: "متجر متخصص في بيع المنتجات المحلية",
		})
		if err != nil {
			return err
		}

		products := make([]*catalog.Product, 0, 3)
		for _, l := range productsFor(m.Username) {
			product := &catalog.Product{
				StoreID:     store.ID,
				MerchantID:  account.ID,
				Name:        l.name,
				Description: l.description,
				Price:       decimal.RequireFromString(l.price),
				IsActive:    true,
			}
			if err := repos.Products.Create(ctx, product); err != nil {
				return err
			}
			products = append(products, product)
		}

		for _, l := range offeringsFor(m.Username) {
			if err := repos.Offerings.Create(ctx, &catalog.Offering{
				StoreID:     store.ID,
				Name:        l.name,
				Description: l.description,
				Price:       decimal.RequireFromString(l.price),
				IsActive:    true,
			}); err != nil {
				return err
			}
		}

		for i, product := range products[:sampleOrders] {
			status := catalog.StatusConfirmed
			if i == 0 {
				status = catalog.StatusPending
			}
			if err := repos.Orders.Create(ctx, &catalog.Order{
				ProductID:       product.ID,
				MerchantID:      account.ID,
				Quantity:        sampleQuantity,
				TotalPrice:      catalog.OrderTotal(product.Price, sampleQuantity),
				Status:          status,
				CustomerName:    fmt.Sprintf("عميل تجريبي %d", i+1),
				CustomerPhone:   fmt.Sprintf("0123456789%d", i),
				CustomerAddress: fmt.Sprintf("عنوان تجريبي %d، الخرطوم", i+1),
			}); err != nil {
				return err
			}
		}

		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		slog.InfoContext(ctx, "merchant provisioned", "username", m.Username)
	} else {
		slog.InfoContext(ctx, "merchant exists, skipped", "username", m.Username)
	}
	return created, nil
}

// Listings adds the sample ads and jobs to tables that are still empty.
func (p *Provisioner) Listings(ctx context.Context) (ads, jobs int, err error) {
	err = core.InTx(ctx, p.db, func(tx *sqlx.Tx) error {
		adRepo := moderation.NewAdRepository(tx)
		existingAds, err := adRepo.List(ctx, core.NewPageRequest(1, 1))
		if err != nil {
			return err
		}
		if existingAds.Total == 0 {
			for _, ad := range sampleAds {
				if err := adRepo.Create(ctx, &ad); err != nil {
					return err
				}
				ads++
			}
		}

		jobRepo := moderation.NewJobRepository(tx)
		existingJobs, err := jobRepo.List(ctx, core.NewPageRequest(1, 1))
		if err != nil {
			return err
		}
		if existingJobs.Total == 0 {
			for _, job := range sampleJobs {
				if err := jobRepo.Create(ctx, &job); err != nil {
					return err
				}
				jobs++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("provision listings: %w", err)
	}
	return ads, jobs, nil
}
