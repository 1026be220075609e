package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Dir(configPath)
	dataDir := filepath.Join(home, ".local", "share", "perfumex")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'perfumex config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the [preferences] section to describe your taste")
	fmt.Println("  2. Run 'perfumex recommend' to see your shortlist")
	fmt.Println("  3. Run 'perfumex replace <id>' to swap a perfume you don't like")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'perfumex config init' to create one.")
			fmt.Println("Built-in defaults are in use:")
			fmt.Println()
			fmt.Println(defaultConfig)
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# perfumex configuration

[database]
path = "~/.local/share/perfumex/perfumex.db"

[recommend]
display_count = 3   # perfumes on the shortlist
language = "uk"     # explanation language: uk or en

# Default preference profile. Command-line flags such as --like and
# --max-price override individual entries for one run.
[preferences]
liked_families = ["Floral", "Citrus"]   # empty list accepts every family
disliked_families = []
price_range = [1000.0, 15000.0]         # only the upper bound is applied
preferred_gender = ["Female", "Unisex"] # Male, Female, Unisex
favorite_notes = ["Rose", "Bergamot"]
disliked_notes = []                     # also matched against family and name
preferred_brands = []
min_longevity = 3                       # 1-5, 0 disables the check
preferred_concentration = ["EDP"]       # EDP, EDT, EDC, Parfum, Cologne, Extrait

[logging]
level = "warn"      # debug, info, warn, error, disabled
format = "console"  # console or json (always written to stderr)

[mcp]
enabled = true
transport = "stdio"
`
