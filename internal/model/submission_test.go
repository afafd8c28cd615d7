package model

import "testing"

func TestSubmissionTestSlug(t *testing.T) {
	withTest := &Submission{Test: &Test{Slug: "listening-practice-1"}}
	slug, ok := withTest.TestSlug()
	if !ok || slug != "listening-practice-1" {
		t.Errorf("TestSlug() = (%q, %v), want (\"listening-practice-1\", true)", slug, ok)
	}

	// a soft-deleted test leaves the preloaded association empty
	orphan := &Submission{TestID: "t-1"}
	if slug, ok := orphan.TestSlug(); ok {
		t.Errorf("TestSlug() on orphaned attempt = (%q, true), want ok=false", slug)
	}
}
