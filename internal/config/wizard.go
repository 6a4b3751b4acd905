package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .lpforge.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to lpforge! Let's set up your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "Editor backend port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port selection: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Default document.
	docPrompt := promptui.Prompt{
		Label:   "Default document (empty for the bundled sample)",
		Default: "",
	}
	doc, err := docPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("document selection: %w", err)
	}
	if doc != "" {
		if _, err := os.Stat(doc); err != nil {
			return nil, fmt.Errorf("document %s: %w", doc, err)
		}
	}
	cfg.Document = doc

	// 3. Output directory.
	outPrompt := promptui.Prompt{
		Label:   "Export output directory",
		Default: cfg.OutputDir,
	}
	out, err := outPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output selection: %w", err)
	}
	if out != "" {
		cfg.OutputDir = out
	}

	// 4. Batch export scope.
	scopePrompt := promptui.Select{
		Label: "Which documents should batch export pick up?",
		Items: []string{"every *.json in the project", "only a documents/ directory"},
	}
	i, _, err := scopePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scope selection: %w", err)
	}
	if i == 1 {
		cfg.Documents = []string{"documents/**/*.json"}
	}

	if err := cfg.Save(".lpforge.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration written to .lpforge.yml")
	fmt.Println("Run `lpforge serve` to start editing.")
	return cfg, nil
}
