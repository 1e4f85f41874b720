package models

import "testing"

func TestQuizXP(t *testing.T) {
	testCases := []struct {
		name       string
		score      int
		total      int
		multiplier float64
		expected   int
	}{
		{"zero score still earns participation xp", 0, 10, 1.0, 20},
		{"plain pass", 80, 10, 1.0, 100},
		{"streak multiplier applies", 80, 10, 1.1, 110},
		{"max multiplier", 100, 10, 2.0, 240},
		{"short quiz", 100, 4, 1.0, 108},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := QuizXP(tc.score, tc.total, tc.multiplier); got != tc.expected {
				t.Errorf("QuizXP(%d, %d, %v) = %d, want %d", tc.score, tc.total, tc.multiplier, got, tc.expected)
			}
		})
	}

	// Monotonic in score and in multiplier.
	for score := 1; score <= 100; score++ {
		if QuizXP(score, 10, 1.5) < QuizXP(score-1, 10, 1.5) {
			t.Fatalf("xp not monotonic in score at %d", score)
		}
	}
	if QuizXP(80, 10, 1.5) < QuizXP(80, 10, 1.25) {
		t.Error("xp not monotonic in multiplier")
	}
}

func TestLevelForXP(t *testing.T) {
	testCases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{10000, 11},
	}
	for _, tc := range testCases {
		if got := LevelForXP(tc.xp); got != tc.level {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.level)
		}
	}

	prev := 0
	for xp := 0; xp <= 50000; xp += 50 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level decreased at %d xp", xp)
		}
		prev = level
	}
}

func TestCorrectOption(t *testing.T) {
	q := Question{
		Options: []Option{
			{ID: "a", Text: "wrong"},
			{ID: "b", Text: "right", IsCorrect: true},
		},
	}
	if opt := q.CorrectOption(); opt == nil || opt.ID != "b" {
		t.Errorf("expected option b, got %+v", opt)
	}

	// Legacy document: no is_correct flags, text marker only.
	legacy := Question{
		CorrectAnswer: "right",
		Options: []Option{
			{ID: "a", Text: "wrong"},
			{ID: "b", Text: "right"},
		},
	}
	if opt := legacy.CorrectOption(); opt == nil || opt.ID != "b" {
		t.Errorf("expected legacy fallback to option b, got %+v", opt)
	}

	broken := Question{Options: []Option{{ID: "a", Text: "wrong"}}}
	if opt := broken.CorrectOption(); opt != nil {
		t.Errorf("expected nil for unmarked question, got %+v", opt)
	}
}

func TestFindAttempt(t *testing.T) {
	p := UserProgress{QuizAttempts: []QuizAttempt{
		{QuizID: "a", Score: 50},
		{QuizID: "b", Score: 80},
	}}
	if got := p.FindAttempt("b"); got == nil || got.Score != 80 {
		t.Errorf("expected attempt b, got %+v", got)
	}
	if got := p.FindAttempt("c"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
