package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func TestMenuDigitShortcut(t *testing.T) {
	var picked string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd { picked = name; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Arithmetic", Action: action("arithmetic")},
		{Label: "Spelling", Action: action("spelling")},
		{Label: "Locked", Action: action("locked"), Disabled: true},
	})

	m, _ = m.Update(key('2'))
	if picked != "spelling" || m.Selected != 1 {
		t.Errorf("picked %q, selected %d; want spelling, 1", picked, m.Selected)
	}

	picked = ""
	m, _ = m.Update(key('3'))
	if picked != "" {
		t.Errorf("disabled item activated: %q", picked)
	}
	m, _ = m.Update(key('9'))
	if m.Selected != 1 {
		t.Errorf("out of range digit moved selection to %d", m.Selected)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "First"},
		{Label: "Off", Disabled: true},
		{Label: "Second"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, target int
		want         float64
	}{
		{0, 5, 0},
		{2, 4, 0.5},
		{7, 5, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.done, tt.target, 40)
		if got := p.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.target, got, tt.want)
		}
	}
	if v := NewProgressBar("Turns", 2, 5, 40).View(); !strings.Contains(v, "2/5") {
		t.Errorf("view %q missing counter", v)
	}
}

func TestButtonRow(t *testing.T) {
	pressed := -1
	row := NewButtonRow([]string{"Again", "Home"}, []func() tea.Cmd{
		func() tea.Cmd { pressed = 0; return nil },
		func() tea.Cmd { pressed = 1; return nil },
	}, 12)

	row, _ = row.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	row, _ = row.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed != 1 {
		t.Errorf("pressed = %d, want 1", pressed)
	}
	row, _ = row.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if row.Focused != 0 {
		t.Errorf("focus did not wrap, got %d", row.Focused)
	}
}
