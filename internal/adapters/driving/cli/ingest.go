package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [folder-id]",
	Short: "Extract text from every document in a folder",
	Long: `Walks the folder and all of its sub-folders, extracts text from each file
and prints one line per file with its outcome: text, skipped, failed or
timed_out.

The folder may be given as a Drive folder id, a Drive folder URL or, with
--source local, a directory path. Use --combined to print the combined
text that would be sent to the LLM instead of the manifest.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNeeds: needStore},
	RunE:        runIngest,
}

func init() {
	ingestCmd.Flags().BoolP("combined", "c", false, "print the combined text instead of the manifest")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return unavailable("ingest")
	}

	combined, err := cmd.Flags().GetBool("combined")
	if err != nil {
		return fmt.Errorf("getting combined flag: %w", err)
	}

	rootID := folderRoot(args[0])
	if rootID == "" {
		return fmt.Errorf("folder id: %w", domain.ErrInvalidInput)
	}

	manifest, err := ingestService.Ingest(cmd.Context(), rootID)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if combined {
		cmd.Print(manifest.Combined)
		if manifest.Combined != "" {
			cmd.Println()
		}
		return nil
	}

	printManifest(cmd, manifest)
	return nil
}

// printManifest writes a per-file outcome table followed by walk diagnostics.
func printManifest(cmd *cobra.Command, m *domain.IngestionManifest) {
	counts := m.Counts()
	cmd.Printf("Run %s (%s) in %s\n", m.RunID, m.Status(), m.Duration().Round(time.Millisecond))
	cmd.Printf("Files: %d (text %d, skipped %d, failed %d, timed out %d)\n",
		m.Len(),
		counts[domain.OutcomeText],
		counts[domain.OutcomeSkipped],
		counts[domain.OutcomeFailed],
		counts[domain.OutcomeTimedOut],
	)

	if m.Len() == 0 {
		cmd.Println("\nNo files found.")
	} else {
		cmd.Println()
		for i := range m.Entries {
			entry := &m.Entries[i]
			name := entry.File.Path
			if name == "" {
				name = entry.File.Name
			}
			line := fmt.Sprintf("  %-11s %s", "["+entry.Result.Kind.String()+"]", name)
			if detail := entry.Result.Detail(); detail != "" {
				line += "  (" + detail + ")"
			}
			cmd.Println(line)
		}
	}

	if len(m.Diagnostics) > 0 {
		cmd.Println("\nSkipped folders:")
		for _, d := range m.Diagnostics {
			path := d.FolderPath
			if path == "" {
				path = d.FolderID
			}
			cmd.Printf("  %s: %v\n", path, d.Err)
		}
	}
}
