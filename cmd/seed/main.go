// Command seed fills an empty Postgres database with demo projects and team
// members. Run it after the server has migrated the schema once.
package main

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"agency-site-server/config"
	"agency-site-server/logger"
)

type project struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
	Tags        []string
	URL         string
}

type member struct {
	Name     string
	Role     string
	Bio      string
	LinkedIn string
	GitHub   string
}

var projects = []project{
	{
		Title:       "Harbor Coffee Online Store",
		Description: "A headless storefront with subscriptions and same-day local delivery.",
		Category:    "web",
		Tags:        []string{"E-commerce", "Next.js", "Stripe"},
		URL:         "https://example.com/harbor-coffee",
	},
	{
		Title:       "FitTrack Mobile",
		Description: "A cross-platform workout tracker with offline sync and wearable integration.",
		Category:    "mobile",
		Tags:        []string{"Flutter", "Firebase", "HealthKit"},
	},
	{
		Title:       "Clinic Booking Redesign",
		Description: "Research-led redesign of a patient booking flow that halved drop-off.",
		Category:    "design",
		Tags:        []string{"UX research", "Figma", "Accessibility"},
	},
	{
		Title:       "Warehouse Vision Assistant",
		Description: "Computer vision pipeline that counts pallets from existing CCTV feeds.",
		Category:    "ai",
		Tags:        []string{"PyTorch", "Edge inference", "Dashboards"},
	},
}

var team = []member{
	{Name: "Alex Morgan", Role: "Founder & Lead Engineer", Bio: "Fifteen years shipping web platforms for startups and enterprises.", LinkedIn: "https://www.linkedin.com/in/example-alex"},
	{Name: "Priya Natarajan", Role: "Design Director", Bio: "Turns fuzzy requirements into interfaces people love.", LinkedIn: "https://www.linkedin.com/in/example-priya"},
	{Name: "Diego Alvarez", Role: "Mobile Engineer", Bio: "Builds smooth, offline-first apps in Flutter and Swift.", GitHub: "https://github.com/example-diego"},
	{Name: "Hannah Weber", Role: "ML Engineer", Bio: "Brings vision and language models from notebook to production.", GitHub: "https://github.com/example-hannah"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, using system environment variables")
	}
	cfg := config.Load()
	logger.Init(cfg.Log.Level)

	if cfg.Database.Driver != "postgres" || cfg.Database.URL == "" {
		logger.Fatal().Str("driver", cfg.Database.Driver).Msg("seed needs DB_DRIVER=postgres and DB_URL")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}
	logger.Info().Msg("Connected to database")

	failed := 0
	if err := seedProjects(db); err != nil {
		logger.Error().Err(err).Msg("Project seeding failed")
		failed++
	}
	if err := seedTeam(db); err != nil {
		logger.Error().Err(err).Msg("Team seeding failed")
		failed++
	}
	if failed > 0 {
		os.Exit(1)
	}
	logger.Info().Msg("Seeding completed")
}

func tableEmpty(db *sql.DB, table string) (bool, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		logger.Warn().Str("table", table).Int("rows", count).Msg("Table already has data, skipping")
	}
	return count == 0, nil
}

func seedProjects(db *sql.DB) error {
	empty, err := tableEmpty(db, "projects")
	if err != nil || !empty {
		return err
	}

	const insert = `
		INSERT INTO projects (id, title, description, category, image, tags, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	// Stagger creation times so the portfolio order is stable
	now := time.Now().UTC()
	inserted := 0
	for i, p := range projects {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return err
		}
		created := now.Add(-time.Duration(len(projects)-i) * time.Minute)
		if _, err := db.Exec(insert, uuid.NewString(), p.Title, p.Description, p.Category, p.ImageURL, string(tags), p.URL, created); err != nil {
			logger.Error().Err(err).Str("title", p.Title).Msg("Failed to insert project")
			continue
		}
		inserted++
	}
	logger.Info().Int("inserted", inserted).Int("total", len(projects)).Msg("Projects seeded")
	return nil
}

func seedTeam(db *sql.DB) error {
	empty, err := tableEmpty(db, "team_members")
	if err != nil || !empty {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insert = `
		INSERT INTO team_members (id, name, role, bio, image, linkedin, twitter, github, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', $5, '', $6, $7, $8, $8)`

	now := time.Now().UTC()
	for i, m := range team {
		if _, err := tx.Exec(insert, uuid.NewString(), m.Name, m.Role, m.Bio, m.LinkedIn, m.GitHub, i, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info().Int("inserted", len(team)).Msg("Team members seeded")
	return nil
}
