package service

import (
	"strings"

	"github.com/Shibo14/ielts-mock/internal/model"
)

// GradeAnswer decides correctness for a saved response. MCQ responses
// must match the key exactly (keys are option identifiers); everything
// else is compared case-insensitively. The response is expected to be
// trimmed by the caller.
func GradeAnswer(qtype, response, answerKey string) bool {
	if qtype == model.QTypeMCQ {
		return response == answerKey
	}
	return strings.EqualFold(response, answerKey)
}

// BandFromRaw converts a raw correct count into an IELTS band score
// using the center's conversion table. An empty paper scores 0.
func BandFromRaw(raw, total int) float64 {
	if total == 0 {
		return 0.0
	}
	pct := float64(raw) / float64(total)
	switch {
	case pct >= 0.95:
		return 9.0
	case pct >= 0.9:
		return 8.5
	case pct >= 0.85:
		return 8.0
	case pct >= 0.75:
		return 7.5
	case pct >= 0.7:
		return 7.0
	case pct >= 0.65:
		return 6.5
	case pct >= 0.6:
		return 6.0
	case pct >= 0.55:
		return 5.5
	case pct >= 0.5:
		return 5.0
	case pct >= 0.45:
		return 4.5
	default:
		return 4.0
	}
}
