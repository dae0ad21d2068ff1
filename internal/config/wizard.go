package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// highlightStyles are the chroma styles offered by the wizard.
var highlightStyles = []string{"none", "github", "monokai", "dracula", "solarized-light"}

// WizardResult is what the init wizard collected.
type WizardResult struct {
	Config      *Config
	OwnerName   string
	Affiliation string
}

// RunWizard runs an interactive configuration wizard. It saves the
// resulting config to path and returns the answers so the caller can
// scaffold a starter data file.
func RunWizard(path string) (*WizardResult, error) {
	fmt.Println("Welcome to folio! Let's set up your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Title = strings.TrimSpace(title)

	namePrompt := promptui.Prompt{
		Label: "Your full name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("name is required")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("owner name: %w", err)
	}

	affPrompt := promptui.Prompt{
		Label:   "Affiliation (optional)",
		Default: "",
	}
	affiliation, err := affPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("affiliation: %w", err)
	}

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = strings.TrimSpace(outputDir)

	stylePrompt := promptui.Select{
		Label: "Code highlighting in blog posts",
		Items: highlightStyles,
	}
	_, style, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}
	if style != "none" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = style
	}

	excludePrompt := promptui.Prompt{
		Label:   "Extra static exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if extra := splitAndTrim(excludeStr); len(extra) > 0 {
		cfg.Exclude = append(append([]string{}, DefaultExcludes...), extra...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return &WizardResult{
		Config:      cfg,
		OwnerName:   strings.TrimSpace(name),
		Affiliation: strings.TrimSpace(affiliation),
	}, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
