// Package content holds the marketing copy rendered by the public pages.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"agency-site-server/typewriter"
)

//go:embed site.yaml
var embedded []byte

type Site struct {
	Company              Company       `yaml:"company"`
	Hero                 Hero          `yaml:"hero"`
	Services             []Service     `yaml:"services"`
	Pricing              []Plan        `yaml:"pricing"`
	About                About         `yaml:"about"`
	AIRobotics           AIRobotics    `yaml:"ai_robotics"`
	PortfolioCategories  []string      `yaml:"portfolio_categories"`
	FallbackTestimonials []Testimonial `yaml:"fallback_testimonials"`
}

type Company struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

type Hero struct {
	Prefix     string            `yaml:"prefix"`
	Words      []string          `yaml:"words"`
	Typewriter typewriter.Config `yaml:"typewriter"`
}

type Service struct {
	Slug     string   `yaml:"slug"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Features []string `yaml:"features"`
}

type Plan struct {
	Name        string   `yaml:"name"`
	Price       int      `yaml:"price"`
	Period      string   `yaml:"period"`
	Description string   `yaml:"description"`
	Highlighted bool     `yaml:"highlighted"`
	Features    []string `yaml:"features"`
}

type Block struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

type About struct {
	Headline string  `yaml:"headline"`
	Story    string  `yaml:"story"`
	Values   []Block `yaml:"values"`
}

type AIRobotics struct {
	Headline     string  `yaml:"headline"`
	Intro        string  `yaml:"intro"`
	Capabilities []Block `yaml:"capabilities"`
}

// Testimonial is a quote shown in the home page carousel
type Testimonial struct {
	Name     string `yaml:"name" json:"name"`
	Position string `yaml:"position" json:"position"`
	Company  string `yaml:"company" json:"company"`
	Content  string `yaml:"content" json:"content"`
	Rating   int    `yaml:"rating" json:"rating"`
	Image    string `yaml:"image,omitempty" json:"image,omitempty"`
}

// Load parses the copy at path, or the embedded copy when path is empty
func Load(path string) (*Site, error) {
	data := embedded
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read site content: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates site copy
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// MustDefault returns the embedded copy and panics if it is broken
func MustDefault() *Site {
	site, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return site
}

func (s *Site) Validate() error {
	if s.Company.Name == "" {
		return fmt.Errorf("site content: company.name is required")
	}
	if len(s.Hero.Words) == 0 {
		return fmt.Errorf("site content: hero.words must not be empty")
	}
	if len(s.FallbackTestimonials) == 0 {
		return fmt.Errorf("site content: fallback_testimonials must not be empty")
	}
	for i, t := range s.FallbackTestimonials {
		if t.Name == "" || t.Content == "" {
			return fmt.Errorf("site content: fallback_testimonials[%d] needs a name and content", i)
		}
		if t.Rating < 1 || t.Rating > 5 {
			return fmt.Errorf("site content: fallback_testimonials[%d] rating %d is outside 1..5", i, t.Rating)
		}
	}
	return nil
}

// Service looks a service up by slug
func (s *Site) Service(slug string) (Service, bool) {
	for _, svc := range s.Services {
		if svc.Slug == slug {
			return svc, true
		}
	}
	return Service{}, false
}
