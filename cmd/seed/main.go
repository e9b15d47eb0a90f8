package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gifticon-keeper/internal/config"
	"gifticon-keeper/internal/domain/model"
	pg "gifticon-keeper/internal/infra/db/postgres"
)

const seedUser = "demo"

type seedRow struct {
	brand    string
	name     string
	category model.Category
	daysLeft int // negative means never expires
	used     bool
}

var rows = []seedRow{
	{"Starbucks", "Iced Americano Tall", model.CategoryCafe, 3, false},
	{"Starbucks", "Caffe Latte Grande", model.CategoryCafe, 25, false},
	{"BHC", "Fried Chicken Set", model.CategoryFood, 6, false},
	{"Baskin Robbins", "Pint Ice Cream", model.CategoryFood, 40, false},
	{"GS25", "5000 KRW Voucher", model.CategoryConvenience, -1, false},
	{"CGV", "Movie Ticket", model.CategoryOther, 10, true},
	{"Oliveyoung", "10000 KRW Gift Card", model.CategoryShopping, 60, false},
}

// Seeds a demo wallet for local development. Applies the schema first, so a
// fresh database works without any manual step. Idempotent: a wallet that
// already has vouchers is left untouched.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, pg.Schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema applied")

	repo := pg.NewPostgresGifticonRepo(pool)
	existing, err := repo.ListByUser(ctx, seedUser)
	if err != nil {
		log.Fatalf("list existing: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("user %q already has %d gifticons, nothing to do\n", seedUser, len(existing))
		return
	}

	now := time.Now().UTC()
	for _, r := range rows {
		var expiresAt *time.Time
		if r.daysLeft >= 0 {
			t := now.AddDate(0, 0, r.daysLeft)
			expiresAt = &t
		}
		g, err := model.NewGifticon(uuid.NewString(), seedUser, r.brand, r.name, r.category, expiresAt, now)
		if err != nil {
			log.Fatalf("build %s / %s: %v", r.brand, r.name, err)
		}
		g.Used = r.used
		if err := repo.Save(ctx, g); err != nil {
			log.Fatalf("save %s / %s: %v", r.brand, r.name, err)
		}
		fmt.Printf("seeded %s / %s\n", r.brand, r.name)
	}
	fmt.Printf("done: %d gifticons for user %q\n", len(rows), seedUser)
}
