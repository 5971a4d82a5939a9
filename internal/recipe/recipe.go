package recipe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// namespace for deriving stable recipe IDs from titles
var recipeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://alchemorsel.com/recipes"))

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// ErrEmptyTitle is returned when a corpus entry has no title
var ErrEmptyTitle = errors.New("recipe title is required")

// Recipe is an immutable corpus entry. Slices are shared with the Database and
// must not be modified by callers.
type Recipe struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	PrepTime    string    `json:"prep_time"`
	CookTime    string    `json:"cook_time,omitempty"`
	Servings    int       `json:"servings,omitempty"`
	Tags        []string  `json:"tags"`
	Cuisine     string    `json:"cuisine,omitempty"`
}

// Slug turns a title into a lookup key, e.g. "Pasta Carbonara" -> "pasta_carbonara"
func Slug(title string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "_"), "_")
}

// Database is a fixed, read-only recipe collection. It is safe for concurrent use.
type Database struct {
	recipes []Recipe
}

// New builds a Database from recipes, preserving their order. Titles must be
// non-empty and unique (case-insensitive).
func New(recipes []Recipe) (*Database, error) {
	seen := make(map[string]struct{}, len(recipes))
	out := make([]Recipe, 0, len(recipes))

	for i, r := range recipes {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return nil, fmt.Errorf("recipe %d: %w", i, ErrEmptyTitle)
		}
		folded := strings.ToLower(title)
		if _, dup := seen[folded]; dup {
			return nil, fmt.Errorf("duplicate recipe title %q", title)
		}
		seen[folded] = struct{}{}

		tags := make([]string, 0, len(r.Tags))
		for _, tag := range r.Tags {
			if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
				tags = append(tags, tag)
			}
		}

		out = append(out, Recipe{
			ID:          uuid.NewSHA1(recipeNamespace, []byte(folded)),
			Key:         Slug(title),
			Title:       title,
			Ingredients: append([]string(nil), r.Ingredients...),
			Steps:       append([]string(nil), r.Steps...),
			PrepTime:    r.PrepTime,
			CookTime:    r.CookTime,
			Servings:    r.Servings,
			Tags:        tags,
			Cuisine:     r.Cuisine,
		})
	}

	return &Database{recipes: out}, nil
}

// Search returns recipes whose title contains query. When no title matches it
// falls back to recipes with a tag containing query. An empty result is not an
// error.
func (d *Database) Search(query string) []Recipe {
	query = strings.ToLower(query)

	results := []Recipe{}
	for _, r := range d.recipes {
		if strings.Contains(strings.ToLower(r.Title), query) {
			results = append(results, r)
		}
	}
	if len(results) > 0 {
		return results
	}

	for _, r := range d.recipes {
		for _, tag := range r.Tags {
			if strings.Contains(tag, query) {
				results = append(results, r)
				break
			}
		}
	}
	return results
}

// ListTitles returns every title in corpus order
func (d *Database) ListTitles() []string {
	titles := make([]string, 0, len(d.recipes))
	for _, r := range d.recipes {
		titles = append(titles, r.Title)
	}
	return titles
}

// List returns every recipe in corpus order
func (d *Database) List() []Recipe {
	return append([]Recipe(nil), d.recipes...)
}

// Len returns the number of recipes in the corpus
func (d *Database) Len() int {
	return len(d.recipes)
}

// Get looks a recipe up by ID, title (case-insensitive) or slug key
func (d *Database) Get(identifier string) (Recipe, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Recipe{}, false
	}

	if id, err := uuid.Parse(identifier); err == nil {
		for _, r := range d.recipes {
			if r.ID == id {
				return r, true
			}
		}
		return Recipe{}, false
	}

	for _, r := range d.recipes {
		if strings.EqualFold(r.Title, identifier) || r.Key == strings.ToLower(identifier) {
			return r, true
		}
	}
	return Recipe{}, false
}
