// Package seeds holds the reference data loaded at startup.
package seeds

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/survey"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

// SurveySeedEnv points at a YAML file that replaces the embedded surveys.
const SurveySeedEnv = "SURVEY_SEED_YAML"

//go:embed surveys.yaml
var seedFS embed.FS

type yamlSeedFile struct {
	Version int          `yaml:"version"`
	Surveys []yamlSurvey `yaml:"surveys"`
}

type yamlSurvey struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Version     int            `yaml:"version"`
	Active      *bool          `yaml:"active"`
	Questions   []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	ID            string   `yaml:"id"`
	Prompt        string   `yaml:"prompt"`
	Type          string   `yaml:"type"`
	Required      *bool    `yaml:"required"`
	Image         string   `yaml:"image"`
	AllowMultiple bool     `yaml:"allow_multiple"`
	Placeholder   string   `yaml:"placeholder"`
	Options       []string `yaml:"options"`
}

func readSurveySeed() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(SurveySeedEnv)); path != "" {
		return os.ReadFile(path)
	}
	return seedFS.ReadFile("surveys.yaml")
}

// LoadSurveys parses the survey seed into models. Question order follows the
// file; required defaults to true for every answerable question.
func LoadSurveys() ([]*types.Survey, error) {
	data, err := readSurveySeed()
	if err != nil {
		return nil, err
	}
	return ParseSurveys(data)
}

func ParseSurveys(data []byte) ([]*types.Survey, error) {
	var file yamlSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse survey seed: %w", err)
	}
	if len(file.Surveys) == 0 {
		return nil, errors.New("survey seed has no surveys")
	}

	titles := map[string]bool{}
	out := make([]*types.Survey, 0, len(file.Surveys))
	for _, ys := range file.Surveys {
		title := strings.TrimSpace(ys.Title)
		if title == "" {
			return nil, errors.New("survey title is required")
		}
		if titles[title] {
			return nil, fmt.Errorf("duplicate survey title: %s", title)
		}
		titles[title] = true

		s := &types.Survey{
			Title:       title,
			Description: strings.TrimSpace(ys.Description),
			Version:     ys.Version,
			IsActive:    ys.Active == nil || *ys.Active,
		}
		if s.Version < 1 {
			s.Version = 1
		}
		ids := map[string]bool{}
		for i, yq := range ys.Questions {
			q, err := toQuestion(yq, i+1)
			if err != nil {
				return nil, fmt.Errorf("survey %s: %w", title, err)
			}
			if ids[q.ID] {
				return nil, fmt.Errorf("survey %s: duplicate question id %s", title, q.ID)
			}
			ids[q.ID] = true
			s.Questions = append(s.Questions, q)
		}
		out = append(out, s)
	}
	return out, nil
}

func toQuestion(yq yamlQuestion, order int) (types.SurveyQuestion, error) {
	id := strings.TrimSpace(yq.ID)
	if id == "" {
		return types.SurveyQuestion{}, fmt.Errorf("question %d: id is required", order)
	}
	if !survey.ValidQuestionType(yq.Type) {
		return types.SurveyQuestion{}, fmt.Errorf("question %s: unknown type %q", id, yq.Type)
	}
	q := types.SurveyQuestion{
		ID:            id,
		Prompt:        strings.TrimSpace(yq.Prompt),
		Type:          yq.Type,
		Order:         order,
		Image:         yq.Image,
		AllowMultiple: yq.AllowMultiple || yq.Type == survey.QuestionMultiChoice,
		Placeholder:   yq.Placeholder,
	}
	q.Required = q.Answerable() && (yq.Required == nil || *yq.Required)
	switch yq.Type {
	case survey.QuestionSelect, survey.QuestionSingleChoice, survey.QuestionMultiChoice:
		if len(yq.Options) == 0 {
			return types.SurveyQuestion{}, fmt.Errorf("question %s: options are required", id)
		}
	}
	for _, opt := range yq.Options {
		q.Options = append(q.Options, types.SurveyOption{Value: opt, Label: opt})
	}
	return q, nil
}

// SeedSurveys upserts every seeded survey by title. Running it again only
// refreshes the stored definitions.
func SeedSurveys(dbc dbctx.Context, repo repos.SurveyRepo, log *logger.Logger) error {
	surveys, err := LoadSurveys()
	if err != nil {
		return err
	}
	for _, s := range surveys {
		created, err := repo.UpsertByTitle(dbc, s)
		if err != nil {
			return fmt.Errorf("seed survey %q: %w", s.Title, err)
		}
		if log != nil {
			log.Debug("Survey seeded", "title", s.Title, "created", created, "survey_id", s.ID)
		}
	}
	return nil
}
