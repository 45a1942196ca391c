package classify

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		wantType       Category
		wantConfidence float64
	}{
		{
			name:           "vacation request",
			message:        "I need vacation days",
			wantType:       CategoryLeave,
			wantConfidence: 0.7,
		},
		{
			name:           "expense with amount",
			message:        "I spent $45.50 on dinner with a client",
			wantType:       CategoryExpense,
			wantConfidence: 0.9, // spent, $, dinner
		},
		{
			name:           "onboarding request",
			message:        "Please start onboarding for our new hire Jane Smith",
			wantType:       CategoryOnboarding,
			wantConfidence: 0.8, // onboarding, new hire
		},
		{
			name:           "pulse survey",
			message:        "Here is my pulse check feedback for the survey",
			wantType:       CategoryPulse,
			wantConfidence: 0.9, // pulse, feedback, survey
		},
		{
			name:           "no keywords",
			message:        "what is the wifi password",
			wantType:       CategoryUnclear,
			wantConfidence: 0.3,
		},
		{
			name:           "empty message",
			message:        "",
			wantType:       CategoryUnclear,
			wantConfidence: 0.3,
		},
		{
			name:           "case insensitive",
			message:        "I NEED VACATION",
			wantType:       CategoryLeave,
			wantConfidence: 0.7,
		},
		{
			name:           "confidence capped at 0.95",
			message:        "expense spent cost receipt claim reimburse lunch dinner travel hotel flight $ dollars",
			wantType:       CategoryExpense,
			wantConfidence: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			if got.RequestType != tt.wantType {
				t.Errorf("RequestType = %q, want %q (scores %v)", got.RequestType, tt.wantType, got.Scores)
			}
			if math.Abs(got.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassify_TieBreakOrder(t *testing.T) {
	// "leave" and "expense" both score exactly one keyword. The declaration
	// order (leave before expense) must win.
	got := Classify("leave receipt")
	if got.Scores[CategoryLeave] != 1 || got.Scores[CategoryExpense] != 1 {
		t.Fatalf("expected a 1-1 tie, got scores %v", got.Scores)
	}
	if got.RequestType != CategoryLeave {
		t.Errorf("RequestType = %q, want %q on tie", got.RequestType, CategoryLeave)
	}
}

func TestClassify_KeywordCountedOncePerKeyword(t *testing.T) {
	// Repeated occurrences of the same keyword still score a single point.
	got := Classify("vacation vacation vacation")
	if got.Scores[CategoryLeave] != 1 {
		t.Errorf("leave score = %d, want 1", got.Scores[CategoryLeave])
	}
	if got.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", got.Confidence)
	}
}

func TestClassify_Invariants(t *testing.T) {
	messages := []string{
		"I need vacation days",
		"spent $50 on lunch",
		"random text with nothing relevant",
		"new hire starting on 2026-01-05",
		"",
	}

	for _, msg := range messages {
		got := Classify(msg)

		if got.Confidence < 0.3 || got.Confidence > 0.95 {
			t.Errorf("Classify(%q) confidence %v out of [0.3, 0.95]", msg, got.Confidence)
		}

		maxScore := 0
		for _, s := range got.Scores {
			if s > maxScore {
				maxScore = s
			}
		}
		if (maxScore == 0) != (got.RequestType == CategoryUnclear) {
			t.Errorf("Classify(%q) type %q inconsistent with max score %d", msg, got.RequestType, maxScore)
		}

		// Pure function: identical input yields identical output.
		again := Classify(msg)
		if again.RequestType != got.RequestType || again.Confidence != got.Confidence {
			t.Errorf("Classify(%q) not deterministic", msg)
		}
	}
}

func TestClassify_Suggestion(t *testing.T) {
	got := Classify("expense claim")
	want := "This appears to be a expense request"
	if got.Suggestion != want {
		t.Errorf("Suggestion = %q, want %q", got.Suggestion, want)
	}
}
