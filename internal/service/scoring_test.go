package service

import (
	"testing"

	"github.com/Shibo14/ielts-mock/internal/model"
)

func TestBandFromRaw(t *testing.T) {
	cases := []struct {
		raw, total int
		want       float64
	}{
		{0, 0, 0.0},
		{40, 40, 9.0},
		{38, 40, 9.0},  // 95%
		{36, 40, 8.5},  // 90%
		{34, 40, 8.0},  // 85%
		{30, 40, 7.5},  // 75%
		{28, 40, 7.0},  // 70%
		{26, 40, 6.5},  // 65%
		{24, 40, 6.0},  // 60%
		{22, 40, 5.5},  // 55%
		{20, 40, 5.0},  // 50%
		{18, 40, 4.5},  // 45%
		{17, 40, 4.0},  // below the table
		{0, 40, 4.0},
	}
	for _, c := range cases {
		if got := BandFromRaw(c.raw, c.total); got != c.want {
			t.Errorf("BandFromRaw(%d, %d) = %v, want %v", c.raw, c.total, got, c.want)
		}
	}
}

func TestGradeAnswer(t *testing.T) {
	cases := []struct {
		qtype, response, key string
		want                 bool
	}{
		{model.QTypeMCQ, "B", "B", true},
		{model.QTypeMCQ, "b", "B", false}, // option ids match exactly
		{model.QTypeMCQ, "", "B", false},
		{model.QTypeGap, "Harbour Bridge", "harbour bridge", true},
		{model.QTypeGap, "harbour", "harbour bridge", false},
		{model.QTypeGap, "", "", true},
	}
	for _, c := range cases {
		if got := GradeAnswer(c.qtype, c.response, c.key); got != c.want {
			t.Errorf("GradeAnswer(%q, %q, %q) = %v, want %v", c.qtype, c.response, c.key, got, c.want)
		}
	}
}
