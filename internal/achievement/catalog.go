package achievement

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the immutable list of achievement rules.
type Catalog struct {
	rules []models.AchievementRule
	byID  map[string]int
}

type catalogFile struct {
	Achievements []models.AchievementRule `yaml:"achievements"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or returns the default catalog when path
// is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		rules: f.Achievements,
		byID:  make(map[string]int, len(f.Achievements)),
	}
	var errs []error
	for i, r := range f.Achievements {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("achievement #%d: missing id", i+1))
			continue
		}
		if _, dup := c.byID[r.ID]; dup {
			errs = append(errs, fmt.Errorf("achievement %s: duplicate id", r.ID))
			continue
		}
		c.byID[r.ID] = i
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("achievement %s: missing name", r.ID))
		}
		if r.PointsAwarded < 0 {
			errs = append(errs, fmt.Errorf("achievement %s: negative points", r.ID))
		}
		if err := r.Requirement.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("achievement %s: %w", r.ID, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Rules returns a copy of the rules in catalog order.
func (c *Catalog) Rules() []models.AchievementRule {
	out := make([]models.AchievementRule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c *Catalog) Get(id string) (models.AchievementRule, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.AchievementRule{}, false
	}
	return c.rules[i], true
}

func (c *Catalog) Len() int {
	return len(c.rules)
}
