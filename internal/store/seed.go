// ABOUTME: Demo fixture loader for commerce-gateway
// ABOUTME: Reads a TOML seed file and populates products, customers, and reviews

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

// SeedFile is the on-disk shape of a TOML demo fixture.
type SeedFile struct {
	Products  []SeedProduct  `toml:"products"`
	Customers []SeedCustomer `toml:"customers"`
	Reviews   []SeedReview   `toml:"reviews"`
}

// SeedProduct describes a catalog entry in the fixture file.
type SeedProduct struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Category    string  `toml:"category"`
	Price       float64 `toml:"price"`
	Description string  `toml:"description"`
}

// SeedCustomer describes a demo account. The plaintext password is hashed
// with bcrypt at load time; it never reaches the database.
type SeedCustomer struct {
	ID         string `toml:"id"`
	Email      string `toml:"email"`
	Password   string `toml:"password"`
	GivenName  string `toml:"given_name"`
	FamilyName string `toml:"family_name"`
}

// SeedReview describes a pre-existing product review in the fixture file.
type SeedReview struct {
	ID         string `toml:"id"`
	ProductID  string `toml:"product_id"`
	CustomerID string `toml:"customer_id"`
	Rating     int    `toml:"rating"`
	Text       string `toml:"text"`
}

// Seed loads the fixture file at path into the store. Seeding is skipped
// entirely when the catalog already has products, so restarting the
// gateway does not clobber data created through the tools.
func Seed(ctx context.Context, s Store, path string, logger *slog.Logger) error {
	count, err := s.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("checking existing catalog: %w", err)
	}
	if count > 0 {
		logger.Info("seed skipped, catalog already populated", "products", count)
		return nil
	}

	var file SeedFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("decoding seed file: %w", err)
	}

	now := time.Now().UTC()

	for i := range file.Products {
		sp := &file.Products[i]
		p := &Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Category:    sp.Category,
			Price:       sp.Price,
			Description: sp.Description,
		}
		if err := s.PutProduct(ctx, p); err != nil {
			return fmt.Errorf("seeding product %s: %w", sp.ID, err)
		}
	}

	for i := range file.Customers {
		sc := &file.Customers[i]
		hash, err := bcrypt.GenerateFromPassword([]byte(sc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", sc.Email, err)
		}
		c := &Customer{
			ID:           sc.ID,
			Email:        sc.Email,
			PasswordHash: string(hash),
			GivenName:    sc.GivenName,
			FamilyName:   sc.FamilyName,
			CreatedAt:    now,
		}
		if err := s.PutCustomer(ctx, c); err != nil {
			return fmt.Errorf("seeding customer %s: %w", sc.Email, err)
		}
	}

	for i := range file.Reviews {
		sr := &file.Reviews[i]
		r := &Review{
			ID:         sr.ID,
			ProductID:  sr.ProductID,
			CustomerID: sr.CustomerID,
			Rating:     sr.Rating,
			ReviewText: sr.Text,
			CreatedAt:  now,
		}
		if err := s.PutReview(ctx, r); err != nil {
			return fmt.Errorf("seeding review %s: %w", sr.ID, err)
		}
	}

	logger.Info("seed complete",
		"products", len(file.Products),
		"customers", len(file.Customers),
		"reviews", len(file.Reviews),
	)
	return nil
}
