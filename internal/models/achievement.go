package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type RequirementKind string

const (
	RequireLessons        RequirementKind = "lessons"
	RequireStreak         RequirementKind = "streak"
	RequirePoints         RequirementKind = "points"
	RequireCourses        RequirementKind = "courses"
	RequireRank           RequirementKind = "rank"
	RequireNightLessons   RequirementKind = "nightLessons"
	RequireMorningLessons RequirementKind = "morningLessons"
	RequirePerfectLessons RequirementKind = "perfectLessons"
)

var requirementKinds = map[RequirementKind]bool{
	RequireLessons:        true,
	RequireStreak:         true,
	RequirePoints:         true,
	RequireCourses:        true,
	RequireRank:           true,
	RequireNightLessons:   true,
	RequireMorningLessons: true,
	RequirePerfectLessons: true,
}

// Requirement is a single-key predicate over ProgressStats. It is encoded as
// a one-entry object, e.g. {"streak": 7}. Rank requirements are upper bounds,
// every other kind is a lower bound.
type Requirement struct {
	Kind  RequirementKind
	Value int
}

func (r Requirement) Validate() error {
	if !requirementKinds[r.Kind] {
		return fmt.Errorf("unknown requirement %q", r.Kind)
	}
	if r.Value < 0 || (r.Kind == RequireRank && r.Value < 1) {
		return fmt.Errorf("requirement %s has invalid value %d", r.Kind, r.Value)
	}
	return nil
}

func (r Requirement) String() string {
	if r.Kind == RequireRank {
		return fmt.Sprintf("%s<=%d", r.Kind, r.Value)
	}
	return fmt.Sprintf("%s>=%d", r.Kind, r.Value)
}

func (r Requirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[RequirementKind]int{r.Kind: r.Value})
}

func (r *Requirement) UnmarshalJSON(data []byte) error {
	var m map[RequirementKind]int
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("requirement: %w", err)
	}
	return r.fromMap(m)
}

func (r *Requirement) UnmarshalYAML(value *yaml.Node) error {
	var m map[RequirementKind]int
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("requirement at line %d: %w", value.Line, err)
	}
	return r.fromMap(m)
}

func (r *Requirement) fromMap(m map[RequirementKind]int) error {
	if len(m) != 1 {
		return fmt.Errorf("requirement must have exactly one key, got %d", len(m))
	}
	for k, v := range m {
		r.Kind, r.Value = k, v
	}
	return r.Validate()
}

type AchievementRule struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description,omitempty" yaml:"description"`
	Category      string      `json:"category" yaml:"category"`
	PointsAwarded int         `json:"points_awarded" yaml:"points"`
	Requirement   Requirement `json:"requirement" yaml:"requirement"`
}

type UnlockedAchievement struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// AchievementStatus is a catalog entry annotated for one user.
type AchievementStatus struct {
	AchievementRule
	Unlocked bool       `json:"unlocked"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}
