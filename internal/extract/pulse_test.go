package extract

import (
	"strings"
	"testing"
)

func TestPulse_RatingAndName(t *testing.T) {
	rec := Pulse("I'm Sarah Lee, rating 8/10, great team support", "EMP7")

	if rec.Rating != 8 {
		t.Errorf("Rating = %d, want 8", rec.Rating)
	}
	if rec.EmployeeName != "Sarah Lee" {
		t.Errorf("EmployeeName = %q, want Sarah Lee", rec.EmployeeName)
	}
	if !strings.Contains(rec.Feedback, "great team support") {
		t.Errorf("Feedback = %q, want it to contain the free text", rec.Feedback)
	}
	if strings.ContainsAny(rec.Feedback, "0123456789") {
		t.Errorf("Feedback = %q, rating fragment should be stripped", rec.Feedback)
	}
}

func TestPulse_RatingPatterns(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want int
	}{
		{"slash ten", "8/10 overall", 8},
		{"rate with out of ten", "I would rate it 7 out of 10", 7},
		{"stars", "4 stars from me", 4},
		{"points", "6 points", 6},
		{"feeling", "feeling 9 today", 9},
		{"score phrase", "my score is 3", 3},
		{"clamp high", "rating 15", 10},
		{"clamp low", "rating 0", 1},
		{"clamp overflow", "rating 99999999999999999999 overall", 10},
		{"default", "everything is fine", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Pulse(tt.msg, "EMP1")
			if rec.Rating != tt.want {
				t.Errorf("Pulse(%q) rating = %d, want %d", tt.msg, rec.Rating, tt.want)
			}
		})
	}
}

func TestPulse_Defaults(t *testing.T) {
	rec := Pulse("all good here", "EMP9")

	if rec.EmployeeName != "Employee EMP9" {
		t.Errorf("EmployeeName = %q, want Employee EMP9", rec.EmployeeName)
	}
	if rec.Email != "employeeEMP9@company.com" {
		t.Errorf("Email = %q, want synthesized employeeEMP9@company.com", rec.Email)
	}
	if rec.Rating != 5 {
		t.Errorf("Rating = %d, want default 5", rec.Rating)
	}
	if rec.Feedback != "all good here" {
		t.Errorf("Feedback = %q, want message unchanged", rec.Feedback)
	}
}

func TestPulse_NameIsCaseSensitive(t *testing.T) {
	// Lowercase "i'm bob" must not be treated as a name.
	rec := Pulse("i'm bob and all is well", "EMP2")
	if rec.EmployeeName != "Employee EMP2" {
		t.Errorf("EmployeeName = %q, want default for lowercase name", rec.EmployeeName)
	}
}

func TestPulse_EmailExtracted(t *testing.T) {
	rec := Pulse("reach me at sarah@corp.io, feeling 7", "EMP3")
	if rec.Email != "sarah@corp.io" {
		t.Errorf("Email = %q, want sarah@corp.io", rec.Email)
	}
}

func TestPulse_BoilerplateStripped(t *testing.T) {
	rec := Pulse("I want to submit a pulse check response: rating 9, team morale is up", "EMP4")

	if rec.Rating != 9 {
		t.Errorf("Rating = %d, want 9", rec.Rating)
	}
	if strings.Contains(rec.Feedback, "submit") || strings.Contains(rec.Feedback, "pulse check") {
		t.Errorf("Feedback = %q, boilerplate should be stripped", rec.Feedback)
	}
	if !strings.Contains(rec.Feedback, "team morale is up") {
		t.Errorf("Feedback = %q, want real content preserved", rec.Feedback)
	}
}

func TestPulse_EmptyFeedbackDefault(t *testing.T) {
	rec := Pulse("submit pulse check response: rating 6", "EMP5")
	if rec.Feedback != defaultFeedback {
		t.Errorf("Feedback = %q, want %q when nothing remains", rec.Feedback, defaultFeedback)
	}
}
