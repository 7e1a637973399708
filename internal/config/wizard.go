package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// yesNo asks a yes/no question and returns the answer.
func yesNo(label string, def bool) (bool, error) {
	items := []string{"no", "yes"}
	cursor := 0
	if def {
		cursor = 1
	}
	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: cursor,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return false, err
	}
	return idx == 1, nil
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to treeutil! Let's set your defaults.")
	fmt.Println()

	cfg := DefaultConfig()
	var err error

	// 1. Enumeration defaults.
	if cfg.IncludeHidden, err = yesNo("Include hidden entries by default", cfg.IncludeHidden); err != nil {
		return nil, fmt.Errorf("include hidden: %w", err)
	}
	if cfg.TraverseSymlinks, err = yesNo("Follow symbolic links by default", cfg.TraverseSymlinks); err != nil {
		return nil, fmt.Errorf("traverse symlinks: %w", err)
	}
	if cfg.Recurse, err = yesNo("Recurse into subdirectories by default", cfg.Recurse); err != nil {
		return nil, fmt.Errorf("recurse: %w", err)
	}

	// 2. Copy behaviour.
	if cfg.Overwrite, err = yesNo("Overwrite existing files when copying", cfg.Overwrite); err != nil {
		return nil, fmt.Errorf("overwrite: %w", err)
	}

	// 3. Output.
	outputPrompt := promptui.Select{
		Label: "Output format",
		Items: []string{string(OutputText), string(OutputJSON), string(OutputYAML)},
	}
	_, outputStr, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output format: %w", err)
	}
	cfg.Output = OutputFormat(outputStr)

	levelPrompt := promptui.Select{
		Label:     "Log level",
		Items:     []string{"debug", "info", "warn", "error"},
		CursorPos: 1,
	}
	_, cfg.LogLevel, err = levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	if cfg.Progress, err = yesNo("Show progress bars", cfg.Progress); err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
