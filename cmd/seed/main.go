package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/scentlog/scentlog/config"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/pkg/helpers"
)

type seedPerfume struct {
	name, brand, designer, country string
	category                       entity.Category
	year                           int
	price                          float64
	description                    string
	top, middle, base              []string
	buyLink                        string
}

var starterCatalog = []seedPerfume{
	{
		name: "Aventus", brand: "Creed", designer: "Olivier Creed", country: "France",
		category: entity.CategoryMen, year: 2010, price: 435,
		description: "Fruity chypre built around smoky birch and pineapple.",
		top:         []string{"pineapple", "bergamot", "blackcurrant", "apple"},
		middle:      []string{"birch", "patchouli", "jasmine", "rose"},
		base:        []string{"musk", "oakmoss", "ambergris", "vanilla"},
		buyLink:     "https://www.creedboutique.com/products/aventus",
	},
	{
		name: "La Vie Est Belle", brand: "Lancome", designer: "Olivier Polge", country: "France",
		category: entity.CategoryWomen, year: 2012, price: 108,
		description: "Sweet iris gourmand with praline and patchouli.",
		top:         []string{"blackcurrant", "pear"},
		middle:      []string{"iris", "jasmine", "orange blossom"},
		base:        []string{"praline", "vanilla", "patchouli", "tonka bean"},
	},
	{
		name: "Jazz Club", brand: "Maison Margiela", designer: "Alienor Massenet", country: "France",
		category: entity.CategoryUnisex, year: 2013, price: 135,
		description: "Boozy tobacco scent evoking a Brooklyn lounge.",
		top:         []string{"pink pepper", "lemon", "neroli"},
		middle:      []string{"rum", "clary sage", "vetiver"},
		base:        []string{"tobacco leaf", "vanilla bean", "styrax"},
	},
	{
		name: "Bleu de Chanel", brand: "Chanel", designer: "Jacques Polge", country: "France",
		category: entity.CategoryMen, year: 2010, price: 132,
		description: "Citrus woody aromatic with incense and cedar.",
		top:         []string{"grapefruit", "lemon", "mint", "pink pepper"},
		middle:      []string{"ginger", "nutmeg", "jasmine"},
		base:        []string{"incense", "cedar", "sandalwood", "labdanum"},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	email := "admin@scentlog.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = conn.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, email, hash, "Scentlog Admin", string(entity.RoleAdmin)).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	for _, p := range starterCatalog {
		var id string
		err := conn.QueryRow(ctx, `
			INSERT INTO perfumes (name, brand, designer, country, category, release_year,
				price, description, notes_top, notes_middle, notes_base, buy_link, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (name, brand) DO UPDATE SET price = EXCLUDED.price
			RETURNING id
		`, p.name, p.brand, p.designer, p.country, string(p.category), p.year,
			p.price, p.description, p.top, p.middle, p.base, nullIfEmpty(p.buyLink), adminID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed perfume %s: %v", p.name, err)
		}
		fmt.Printf("seeded perfume: %s by %s (%s)\n", p.name, p.brand, id)
	}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
