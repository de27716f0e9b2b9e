package setup

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/mattercrypt/mattercrypt/internal/configs"
	"github.com/mattercrypt/mattercrypt/internal/credentials"
	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
	logger "github.com/mattercrypt/mattercrypt/internal/logging"
)

// scriptedPrompter replays canned answers and records every label it was
// asked for, so tests can assert which fields were prompted.
type scriptedPrompter struct {
	answers      []string
	secrets      []string
	Labels       []string
	SecretLabels []string
}

func (p *scriptedPrompter) Prompt(label string) (string, error) {
	p.Labels = append(p.Labels, label)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("input closed")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) PromptSecret(label string) (string, error) {
	p.SecretLabels = append(p.SecretLabels, label)
	if len(p.secrets) == 0 {
		return "", fmt.Errorf("input closed")
	}
	secret := p.secrets[0]
	p.secrets = p.secrets[1:]
	return secret, nil
}

func withTempConfigPath(t *testing.T) {
	t.Helper()
	oldPath := configs.UserMattercryptSettings.UserConfigPath
	configs.UserMattercryptSettings.UserConfigPath = t.TempDir()
	t.Cleanup(func() {
		configs.UserMattercryptSettings.UserConfigPath = oldPath
	})
}

func TestFullWizard(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"https://chat.example.com", "alice"},
		secrets: []string{"p@ss", "p@ss"},
	}
	secrets := credentials.NewMemoryStore()
	wizard := &Wizard{Prompter: prompter, Secrets: secrets, Logger: logger.Logger{}}

	session, err := wizard.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if session.Settings.Server.URL != "https://chat.example.com" {
		t.Errorf("Expected server URL to be kept, got %q", session.Settings.Server.URL)
	}
	if session.Settings.Server.Username != "alice" {
		t.Errorf("Expected username alice, got %q", session.Settings.Server.Username)
	}
	if session.Password != "p@ss" {
		t.Errorf("Expected password p@ss, got %q", session.Password)
	}

	// Both stores must hold the entered values.
	persisted, err := configs.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings after wizard failed: %v", err)
	}
	if persisted.Server.URL != "https://chat.example.com" || persisted.Server.Username != "alice" {
		t.Errorf("Persisted settings mismatch: %+v", persisted.Server)
	}
	stored, err := secrets.Get("alice")
	if err != nil {
		t.Fatalf("Secret not stored: %v", err)
	}
	if stored != "p@ss" {
		t.Errorf("Expected stored secret p@ss, got %q", stored)
	}
}

func TestWizardRetriesInvalidServerURL(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"not a url", "ftp://chat.example.com", "https://chat.example.com", "alice"},
		secrets: []string{"p@ss", "p@ss"},
	}
	wizard := &Wizard{Prompter: prompter, Secrets: credentials.NewMemoryStore(), Logger: logger.Logger{}}

	session, err := wizard.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if session.Settings.Server.URL != "https://chat.example.com" {
		t.Errorf("Expected third URL attempt to be accepted, got %q", session.Settings.Server.URL)
	}
}

func TestWizardAbortsAfterExhaustedURLRetries(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"bad", "worse", "ftp://nope"},
	}
	wizard := &Wizard{Prompter: prompter, Secrets: credentials.NewMemoryStore(), Logger: logger.Logger{}}

	_, err := wizard.Run()
	if !errors.Is(err, mcerrors.ErrSetupAborted) {
		t.Fatalf("Expected ErrSetupAborted, got %v", err)
	}

	// An aborted setup must not persist anything.
	if _, err := configs.LoadSettings(); !errors.Is(err, mcerrors.ErrConfigNotFound) {
		t.Errorf("Expected no settings after aborted setup, got %v", err)
	}
}

func TestWizardAbortsOnCancelledPrompt(t *testing.T) {
	withTempConfigPath(t)

	// No answers at all simulates the operator closing input immediately.
	wizard := &Wizard{Prompter: &scriptedPrompter{}, Secrets: credentials.NewMemoryStore(), Logger: logger.Logger{}}

	_, err := wizard.Run()
	if !errors.Is(err, mcerrors.ErrSetupAborted) {
		t.Fatalf("Expected ErrSetupAborted, got %v", err)
	}
}

func TestWizardPasswordMismatchThenMatch(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"https://chat.example.com", "alice"},
		secrets: []string{"first", "typo", "p@ss", "p@ss"},
	}
	secrets := credentials.NewMemoryStore()
	wizard := &Wizard{Prompter: prompter, Secrets: secrets, Logger: logger.Logger{}}

	session, err := wizard.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if session.Password != "p@ss" {
		t.Errorf("Expected password from second attempt, got %q", session.Password)
	}
}

func TestWizardPasswordMismatchExhaustsRetries(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"https://chat.example.com", "alice"},
		secrets: []string{"a", "b", "c", "d", "e", "f"},
	}
	wizard := &Wizard{Prompter: prompter, Secrets: credentials.NewMemoryStore(), Logger: logger.Logger{}}

	_, err := wizard.Run()
	if !errors.Is(err, mcerrors.ErrSetupAborted) {
		t.Fatalf("Expected ErrSetupAborted after mismatched passwords, got %v", err)
	}
}

func TestWizardSecretFailureLeavesRecoverableState(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"https://chat.example.com", "alice"},
		secrets: []string{"p@ss", "p@ss"},
	}
	failing := credentials.NewMemoryStore()
	failing.SetErr = mcerrors.ErrStoreUnavailable
	wizard := &Wizard{Prompter: prompter, Secrets: failing, Logger: logger.Logger{}}

	_, err := wizard.Run()
	if err == nil {
		t.Fatal("Expected error when secret store fails")
	}

	// Settings were written before the secret failed. The next resolve must
	// run secret-only recovery, reusing the persisted fields.
	recoveryPrompter := &scriptedPrompter{secrets: []string{"p@ss", "p@ss"}}
	working := credentials.NewMemoryStore()
	boot := &Bootstrap{Secrets: working, Prompter: recoveryPrompter, Logger: logger.Logger{}}

	session, err := boot.Resolve(false)
	if err != nil {
		t.Fatalf("Resolve after half-completed setup failed: %v", err)
	}

	if len(recoveryPrompter.Labels) != 0 {
		t.Errorf("Expected no visible-field prompts during recovery, got %v", recoveryPrompter.Labels)
	}
	if session.Settings.Server.URL != "https://chat.example.com" || session.Settings.Server.Username != "alice" {
		t.Errorf("Expected recovery to reuse persisted fields, got %+v", session.Settings.Server)
	}
	if stored, err := working.Get("alice"); err != nil || stored != "p@ss" {
		t.Errorf("Expected recovered secret to be stored, got %q (err %v)", stored, err)
	}
}

func TestResolveFirstRun(t *testing.T) {
	withTempConfigPath(t)

	prompter := &scriptedPrompter{
		answers: []string{"https://chat.example.com", "alice"},
		secrets: []string{"p@ss", "p@ss"},
	}
	secrets := credentials.NewMemoryStore()
	boot := &Bootstrap{Secrets: secrets, Prompter: prompter, Logger: logger.Logger{}}

	session, err := boot.Resolve(false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if session.Settings.Server.Username != "alice" || session.Password != "p@ss" {
		t.Errorf("Unexpected session: %+v password %q", session.Settings.Server, session.Password)
	}
	if stored, err := secrets.Get("alice"); err != nil || stored != "p@ss" {
		t.Errorf("Expected secret alice -> p@ss, got %q (err %v)", stored, err)
	}
}

func TestResolveAllPresentPromptsNothing(t *testing.T) {
	withTempConfigPath(t)

	settings := &configs.Settings{Server: configs.ServerConfig{URL: "https://chat.example.com", Username: "alice"}}
	if err := configs.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	secrets := credentials.NewMemoryStore()
	if err := secrets.Set("alice", "p@ss"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	prompter := &scriptedPrompter{}
	boot := &Bootstrap{Secrets: secrets, Prompter: prompter, Logger: logger.Logger{}}

	session, err := boot.Resolve(false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(prompter.Labels) != 0 || len(prompter.SecretLabels) != 0 {
		t.Errorf("Expected no prompts, got %v / %v", prompter.Labels, prompter.SecretLabels)
	}
	if session.Password != "p@ss" {
		t.Errorf("Expected stored password, got %q", session.Password)
	}
}

func TestResolveCorruptSettingsRunsFullSetup(t *testing.T) {
	withTempConfigPath(t)

	// Write garbage where settings.toml belongs.
	if err := configs.SaveSettings(&configs.Settings{Server: configs.ServerConfig{URL: "https://x.example.com", Username: "x"}}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}
	if err := os.WriteFile(configs.SettingsPath(), []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("corrupting settings failed: %v", err)
	}

	prompter := &scriptedPrompter{
		answers: []string{"https://chat.example.com", "alice"},
		secrets: []string{"p@ss", "p@ss"},
	}
	boot := &Bootstrap{Secrets: credentials.NewMemoryStore(), Prompter: prompter, Logger: logger.Logger{}}

	session, err := boot.Resolve(false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if session.Settings.Server.Username != "alice" {
		t.Errorf("Expected full re-setup after corruption, got %+v", session.Settings.Server)
	}
}

func TestResolveReinitRepromptsEverything(t *testing.T) {
	withTempConfigPath(t)

	// Prior state is fully valid.
	if err := configs.SaveSettings(&configs.Settings{Server: configs.ServerConfig{URL: "https://old.example.com", Username: "alice"}}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}
	secrets := credentials.NewMemoryStore()
	if err := secrets.Set("alice", "old-pass"); err != nil {
		t.Fatalf("seed secret failed: %v", err)
	}

	prompter := &scriptedPrompter{
		answers: []string{"https://new.example.com", "bob"},
		secrets: []string{"new-pass", "new-pass"},
	}
	boot := &Bootstrap{Secrets: secrets, Prompter: prompter, Logger: logger.Logger{}}

	session, err := boot.Resolve(true)
	if err != nil {
		t.Fatalf("Resolve(true) failed: %v", err)
	}

	if len(prompter.Labels) != 2 {
		t.Errorf("Expected both visible fields re-prompted, got %v", prompter.Labels)
	}
	if session.Settings.Server.URL != "https://new.example.com" || session.Settings.Server.Username != "bob" {
		t.Errorf("Expected overwritten settings, got %+v", session.Settings.Server)
	}

	persisted, err := configs.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if persisted.Server.URL != "https://new.example.com" {
		t.Errorf("Expected settings file overwritten, got %q", persisted.Server.URL)
	}
	if stored, err := secrets.Get("bob"); err != nil || stored != "new-pass" {
		t.Errorf("Expected new secret stored, got %q (err %v)", stored, err)
	}
}

func TestResolveStoreUnavailableFallsBackToPrompt(t *testing.T) {
	withTempConfigPath(t)

	if err := configs.SaveSettings(&configs.Settings{Server: configs.ServerConfig{URL: "https://chat.example.com", Username: "alice"}}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}
	secrets := credentials.NewMemoryStore()
	secrets.GetErr = mcerrors.ErrStoreUnavailable
	secrets.SetErr = mcerrors.ErrStoreUnavailable

	prompter := &scriptedPrompter{secrets: []string{"p@ss"}}
	boot := &Bootstrap{Secrets: secrets, Prompter: prompter, Logger: logger.Logger{}}

	session, err := boot.Resolve(false)
	if err != nil {
		t.Fatalf("Resolve with unavailable store failed: %v", err)
	}
	if session.Password != "p@ss" {
		t.Errorf("Expected prompted password, got %q", session.Password)
	}
	if len(prompter.SecretLabels) != 1 {
		t.Errorf("Expected a single password prompt, got %v", prompter.SecretLabels)
	}
}

func TestValidateServerURL(t *testing.T) {
	valid := []string{
		"https://chat.example.com",
		"https://chat.example.com/api/v4",
		"http://localhost:8065",
	}
	for _, raw := range valid {
		if err := validateServerURL(raw); err != nil {
			t.Errorf("validateServerURL(%q) unexpectedly failed: %v", raw, err)
		}
	}

	invalid := []string{
		"",
		"chat.example.com",
		"ftp://chat.example.com",
		"https://",
	}
	for _, raw := range invalid {
		if err := validateServerURL(raw); err == nil {
			t.Errorf("validateServerURL(%q) unexpectedly passed", raw)
		}
	}
}
