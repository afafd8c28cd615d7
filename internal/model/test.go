package model

import "encoding/json"

// Test sections mirror the IELTS paper structure. Writing and speaking
// papers can be stored but are not auto-graded.
const (
	SectionListening = "listening"
	SectionReading   = "reading"
	SectionWriting   = "writing"
	SectionSpeaking  = "speaking"
)

type Test struct {
	UUIDBase
	Title           string  `gorm:"size:255;not null" json:"title"`
	Slug            string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Section         string  `gorm:"size:20;not null" json:"section"`
	Level           string  `gorm:"size:20;default:'general'" json:"level"`
	DurationMinutes int     `gorm:"default:60" json:"durationMinutes"`
	CenterID        uint    `gorm:"index;type:bigint unsigned" json:"centerId"`
	AudioFilename   string  `gorm:"size:255" json:"audioFilename,omitempty"`
	AudioDuration   float64 `gorm:"default:0" json:"audioDurationSec,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// Question types. MCQ answers are compared exactly against the key;
// everything else is compared case-insensitively after trimming.
const (
	QTypeMCQ = "mcq"
	QTypeGap = "gap"
)

type Question struct {
	UUIDBase
	TestID     string          `gorm:"index;type:varchar(36)" json:"testId"`
	QType      string          `gorm:"size:50;not null" json:"qtype"`
	Prompt     string          `gorm:"type:text;not null" json:"prompt"`
	Options    json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	AnswerKey  string          `gorm:"type:text" json:"answerKey,omitempty"`
	OrderIndex int             `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}
