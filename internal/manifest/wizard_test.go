package manifest

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(t *testing.T, m WizardModel, text string) WizardModel {
	t.Helper()

	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func press(t *testing.T, m WizardModel, msg tea.Msg) WizardModel {
	t.Helper()

	updated, _ := m.Update(msg)

	wizard, ok := updated.(WizardModel)
	if !ok {
		t.Fatalf("expected WizardModel, got %T", updated)
	}

	return wizard
}

func enter(t *testing.T, m WizardModel) WizardModel {
	t.Helper()

	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestWizardInitialState(t *testing.T) {
	m := NewWizard(Manifest{Name: "Preset Plugin"})

	if m.currentField != 0 {
		t.Errorf("expected wizard to start on field 0, got %d", m.currentField)
	}

	if got := m.inputs[0].Value(); got != "Preset Plugin" {
		t.Errorf("expected seeded name input, got %q", got)
	}

	if m.Done() || m.Cancelled() {
		t.Error("expected fresh wizard to be neither done nor cancelled")
	}
}

func TestWizardRequiredFieldBlocksEmptyEnter(t *testing.T) {
	m := NewWizard(Manifest{})

	m = enter(t, m)

	if m.currentField != 0 {
		t.Errorf("expected wizard to stay on field 0, got %d", m.currentField)
	}

	if m.inputError == "" {
		t.Error("expected an input error for the empty required field")
	}

	if !strings.Contains(m.View(), m.inputError) {
		t.Error("expected the view to render the input error")
	}
}

func TestWizardRejectsMalformedVersion(t *testing.T) {
	m := NewWizard(Manifest{Name: "P", Author: "A"})

	m = enter(t, m) // name (seeded)
	m = enter(t, m) // author (seeded)

	m = typeText(t, m, "banana")
	m = enter(t, m)

	if m.currentField != 2 {
		t.Errorf("expected wizard to stay on the version field, got field %d", m.currentField)
	}

	if m.inputError == "" {
		t.Error("expected an input error for the malformed version")
	}
}

func TestWizardCompletesManifest(t *testing.T) {
	m := NewWizard(Manifest{})

	m = typeText(t, m, "Cover Art Fetcher")
	m = enter(t, m)
	m = typeText(t, m, "Jane Doe")
	m = enter(t, m)
	m = typeText(t, m, "1.0.0")
	m = enter(t, m)
	m = typeText(t, m, "2.0, 2.1")
	m = enter(t, m)
	m = enter(t, m) // description skipped
	m = typeText(t, m, "MIT")
	m = enter(t, m)
	m = enter(t, m) // license_url skipped

	if !m.Done() {
		t.Fatal("expected wizard to be done after the last field")
	}

	got := m.Manifest()
	if got.Name != "Cover Art Fetcher" || got.Author != "Jane Doe" {
		t.Errorf("unexpected name/author: %q / %q", got.Name, got.Author)
	}

	if got.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", got.Version)
	}

	if len(got.APIVersions) != 2 || got.APIVersions[0] != "2.0" || got.APIVersions[1] != "2.1" {
		t.Errorf("unexpected api versions: %v", got.APIVersions)
	}

	if got.License != "MIT" || got.Description != "" || got.LicenseURL != "" {
		t.Errorf("unexpected optional fields: %+v", got)
	}

	if violations := Validate(&got); violations != nil {
		t.Errorf("expected completed manifest to validate, got %v", violations)
	}
}

func TestWizardCancel(t *testing.T) {
	m := NewWizard(Manifest{})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.Cancelled() {
		t.Error("expected wizard to be cancelled after esc")
	}

	if !strings.Contains(m.View(), "cancelled") {
		t.Error("expected cancelled view text")
	}
}

func TestWizardBackNavigation(t *testing.T) {
	m := NewWizard(Manifest{})

	m = typeText(t, m, "Plugin")
	m = enter(t, m)

	if m.currentField != 1 {
		t.Fatalf("expected field 1 after entering the name, got %d", m.currentField)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	if m.currentField != 0 {
		t.Errorf("expected shift+tab to return to field 0, got %d", m.currentField)
	}
}
