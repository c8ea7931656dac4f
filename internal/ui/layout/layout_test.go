package layout

import (
	"strings"
	"testing"
)

func TestPoints(t *testing.T) {
	if got := Points(12); got != "★ 12 pts" {
		t.Errorf("Points(12) = %q", got)
	}
}

func TestSizeThresholds(t *testing.T) {
	tests := []struct {
		w, h                         int
		tooSmall, compactW, compactH bool
	}{
		{79, 30, true, true, false},
		{80, 24, false, true, true},
		{120, 40, false, false, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.tooSmall {
			t.Errorf("IsTooSmall(%d, %d) = %v", tt.w, tt.h, got)
		}
		if got := IsCompactWidth(tt.w); got != tt.compactW {
			t.Errorf("IsCompactWidth(%d) = %v", tt.w, got)
		}
		if got := IsCompactHeight(tt.h); got != tt.compactH {
			t.Errorf("IsCompactHeight(%d) = %v", tt.h, got)
		}
	}
}

func TestHeaderShowsTitleAndStatus(t *testing.T) {
	h := RenderHeader("Spelling", Points(7), 100)
	for _, want := range []string{"DrillBuddy", "Spelling", "★ 7 pts"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestFooterDropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "Ctrl+L", Description: "Say it"},
		{Key: "Ctrl+P", Description: "Repeat"},
		{Key: "Tab", Description: "Hint"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 200)
	for _, h := range hints {
		if !strings.Contains(wide, h.Description) {
			t.Errorf("wide footer missing %q", h.Description)
		}
	}

	narrow := RenderFooter(hints, 40)
	if !strings.Contains(narrow, "Answer") || !strings.Contains(narrow, "Quit") {
		t.Errorf("narrow footer must keep the first and last hints:\n%s", narrow)
	}
	if strings.Contains(narrow, "Hint") {
		t.Errorf("narrow footer should have dropped trailing hints:\n%s", narrow)
	}
}

func TestFrameHeight(t *testing.T) {
	frame := RenderFrame("h", "body", "f", 20, 10)
	if got := strings.Count(frame, "\n") + 1; got != 10 {
		t.Errorf("frame has %d lines, want 10", got)
	}
}
