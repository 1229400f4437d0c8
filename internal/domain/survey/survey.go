package survey

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionText         = "text"
	QuestionDate         = "date"
	QuestionSelect       = "select"
	QuestionSingleChoice = "single-choice"
	QuestionMultiChoice  = "multi-choice"
	// QuestionInfo is display-only and never takes an answer.
	QuestionInfo = "info"
)

var QuestionTypes = []string{QuestionText, QuestionDate, QuestionSelect, QuestionSingleChoice, QuestionMultiChoice, QuestionInfo}

func ValidQuestionType(v string) bool {
	for _, t := range QuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Answerable reports whether the question collects a response.
func (q Question) Answerable() bool { return q.Type != QuestionInfo }

type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type Question struct {
	ID            string   `json:"id" yaml:"id"`
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Type          string   `json:"type" yaml:"type"`
	Required      bool     `json:"required" yaml:"required"`
	Order         int      `json:"order" yaml:"order"`
	Image         string   `json:"image,omitempty" yaml:"image"`
	AllowMultiple bool     `json:"allow_multiple,omitempty" yaml:"allow_multiple"`
	Placeholder   string   `json:"placeholder,omitempty" yaml:"placeholder"`
	Options       []Option `json:"options,omitempty" yaml:"options"`
}

type Survey struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                        `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description string                        `gorm:"type:text;column:description" json:"description,omitempty"`
	Version     int                           `gorm:"not null;default:1;column:version" json:"version"`
	IsActive    bool                          `gorm:"not null;default:true;column:is_active" json:"is_active"`
	Questions   datatypes.JSONSlice[Question] `gorm:"column:questions" json:"questions"`
	CreatedAt   time.Time                     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time                     `gorm:"not null" json:"updated_at"`
}

func (Survey) TableName() string { return "survey" }

func (s *Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
