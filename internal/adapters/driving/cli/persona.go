package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate [folder-id]",
	Short: "Generate a marketing persona from a folder",
	Long: `Ingests the folder and sends the combined text to the configured LLM,
which writes a marketing persona document in Markdown.

The document is printed to stdout unless --out names a file. The system
prompt can be customised in ~/.persona/prompts/persona_system.txt.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNeeds: needStore + "," + needLLM},
	RunE:        runGenerate,
}

func init() {
	generateCmd.Flags().StringP("out", "o", "", "write the persona to this file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if personaService == nil {
		return unavailable("persona")
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("getting out flag: %w", err)
	}

	rootID := folderRoot(args[0])
	if rootID == "" {
		return fmt.Errorf("folder id: %w", domain.ErrInvalidInput)
	}

	persona, err := personaService.Generate(cmd.Context(), rootID)
	if errors.Is(err, domain.ErrNoContent) {
		if persona != nil && persona.Manifest != nil {
			printManifest(cmd, persona.Manifest)
		}
		return fmt.Errorf("no text could be extracted from %s: %w", rootID, err)
	}
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if out == "" {
		cmd.Println(persona.Content)
		return nil
	}

	if err := os.WriteFile(out, []byte(persona.Content+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing persona: %w", err)
	}
	cmd.Printf("Persona written to %s (model %s, run %s)\n", out, persona.Model, persona.RunID)
	if persona.Manifest != nil && persona.Manifest.HasFailures() {
		cmd.Println("Some files could not be read; run 'persona ingest' for details.")
	}
	return nil
}
