package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/trendia-ai/trendia/internal/adapters/database"
	"github.com/trendia-ai/trendia/internal/adapters/search"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/typesense"
	"github.com/trendia-ai/trendia/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	product_url       TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	price_brl         DOUBLE PRECISION NOT NULL DEFAULT 0,
	image_url         TEXT,
	source            TEXT NOT NULL DEFAULT 'generated',
	marketing_persona TEXT,
	innovation_score  INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
	name         TEXT PRIMARY KEY,
	w_innovation DOUBLE PRECISION NOT NULL DEFAULT 0.5,
	w_price      DOUBLE PRECISION NOT NULL DEFAULT 0.5,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS feedback (
	id           UUID PRIMARY KEY,
	product_url  TEXT NOT NULL,
	user_profile TEXT NOT NULL,
	action       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS search_history (
	id         UUID PRIMARY KEY,
	prompt     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS favorites (
	id          UUID PRIMARY KEY,
	username    TEXT NOT NULL,
	product_url TEXT NOT NULL REFERENCES products(product_url),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (username, product_url)
);

CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at);
CREATE INDEX IF NOT EXISTS idx_search_history_created_at ON search_history(created_at);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			DROP TABLE IF EXISTS
				favorites,
				feedback,
				search_history,
				products,
				profiles
			CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ensured")

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(ctx); err != nil {
			log.Printf("Failed to init Typesense schema: %v", err)
		}
	}

	productRepo := database.NewProductAdapter(pgClient)
	profileRepo := database.NewProfileAdapter(pgClient)
	scoring := services.NewScoringService(cfg.Scoring)

	// 1. Seed profiles
	profiles := []entities.Profile{
		{Name: "geral", Weights: entities.DefaultWeights(), UpdatedAt: time.Now()},
		{Name: "jovem", Weights: entities.WeightVector{Innovation: 0.7, Price: 0.3}, UpdatedAt: time.Now()},
		{Name: "adulto", Weights: entities.WeightVector{Innovation: 0.4, Price: 0.6}, UpdatedAt: time.Now()},
		{Name: "idoso", Weights: entities.WeightVector{Innovation: 0.3, Price: 0.7}, UpdatedAt: time.Now()},
	}
	for _, p := range profiles {
		if err := profileRepo.Set(ctx, &p); err != nil {
			log.Printf("Failed to seed profile %s: %v", p.Name, err)
		}
	}

	// 2. Seed a starter product corpus
	type seedProduct struct {
		name        string
		description string
		price       float64
		persona     string
	}
	seedProducts := []seedProduct{
		{"Globo de Plasma Interativo", "Globo de plasma inovador que reage ao toque, decoração tecnológica e exclusiva", 79.90, "Jovens fascinados por tecnologia"},
		{"Caneca Autoaquecida USB", "Caneca inteligente com aquecimento USB, mantém o café na temperatura ideal", 95.00, "Profissionais de escritório"},
		{"Mini Jardim Zen", "Kit de jardim zen de mesa para relaxar, presente criativo e diferente", 55.00, "Pessoas que buscam bem-estar"},
		{"Relógio de Parede Engrenagens", "Relógio decorativo estilo steampunk com engrenagens expostas, design único", 130.00, "Amantes de decoração industrial"},
		{"Cofrinho Eletrônico Come-Moedas", "Cofrinho eletrônico divertido que come moedas, presente engraçado para crianças", 42.50, "Crianças e colecionadores"},
		{"Almofada Massageadora Shiatsu", "Almofada com massagem shiatsu para alívio do estresse no dia a dia", 160.00, "Adultos com rotina intensa"},
		{"Projetor de Estrelas Galaxy", "Projetor de luz galáxia inovador que transforma o quarto em céu estrelado", 110.00, "Jovens que gostam de astronomia"},
		{"Tábua de Queijos Personalizada", "Tábua de queijos em bambu gravada a laser com nome, presente afetivo", 85.00, "Anfitriões e casais"},
	}

	now := time.Now().UTC()
	products := make([]*entities.Product, 0, len(seedProducts))
	for _, sp := range seedProducts {
		product := &entities.Product{
			URL:              entities.SyntheticURL(sp.name),
			Title:            sp.name,
			Description:      sp.description,
			PriceBRL:         sp.price,
			ImageURL:         entities.PlaceholderImageURL(sp.name),
			Source:           entities.SourceGenerated,
			MarketingPersona: sp.persona,
			CreatedAt:        now,
		}
		product.InnovationScore = scoring.InnovationScore(product)
		products = append(products, product)
	}

	if err := productRepo.Upsert(ctx, products); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("Seeded %d products and %d profiles", len(products), len(profiles))

	if searchRepo != nil {
		for _, product := range products {
			if err := searchRepo.Index(ctx, product); err != nil {
				log.Printf("Failed to index %s: %v", product.Title, err)
			}
		}
		log.Println("Products indexed in Typesense")
	}
}
