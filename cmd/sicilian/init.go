package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/sicilian/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a sicilian configuration file",
		Long: `Generate a documented sicilian configuration file with sensible defaults.

By default, creates sicilian.json in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create sicilian.json in current directory
  sicilian init

  # Custom output path
  sicilian init --config custom.json

  # Overwrite existing file
  sicilian init --force

  # Generate smaller config with essential options only
  sicilian init --minimal

  # Interactive setup wizard
  sicilian init --interactive
  sicilian init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "sicilian.json",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	projectType := config.ProjectTypeGeneric
	nonceMode := config.DefaultNonceMode

	if interactive {
		var err error
		var interactiveConfigPath string
		projectType, nonceMode, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(projectType, nonceMode)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'sicilian scan .' to sign your project.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.ProjectType, string, string, error) {
	fmt.Println()
	fmt.Println("sicilian Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	projectTypes := []struct {
		Label string
		Value config.ProjectType
	}{
		{"Generic JavaScript/TypeScript", config.ProjectTypeGeneric},
		{"React/Next.js", config.ProjectTypeReact},
		{"Vue/Nuxt", config.ProjectTypeVue},
		{"Node.js Backend", config.ProjectTypeNodeBackend},
	}

	projectTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	projectPrompt := promptui.Select{
		Label:     "What type of project is this?",
		Items:     projectTypes,
		Templates: projectTemplates,
	}

	projectIdx, _, err := projectPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("project selection cancelled: %w", err)
	}
	selectedProject := projectTypes[projectIdx].Value

	fmt.Println()

	nonceModes := []struct {
		Label       string
		Description string
		Value       string
	}{
		{"Random (recommended)", "Fresh cryptographic nonce per function per run", config.DefaultNonceMode},
		{"Derived", "Nonce derived deterministically from traversal path", "derived"},
	}

	nonceTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	noncePrompt := promptui.Select{
		Label:     "How should per-function parameter nonces be generated?",
		Items:     nonceModes,
		Templates: nonceTemplates,
	}

	nonceIdx, _, err := noncePrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("nonce mode selection cancelled: %w", err)
	}
	selectedNonceMode := nonceModes[nonceIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedProject, selectedNonceMode, outputPath, nil
}
