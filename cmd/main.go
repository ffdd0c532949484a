package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scaletui/scaletui"
	"github.com/scaletui/scaletui/scalebook"
	"github.com/scaletui/scaletui/smfout"
	"github.com/scaletui/scaletui/theory"
)

var (
	questionsVar  int
	inputVar      string
	outputVar     string
	difficultyVar int
	soundFontVar  string

	exportRootVar   string
	exportOutDirVar string
)

var rootCmd = &cobra.Command{
	Use:   "scaletui",
	Short: "A terminal quiz on naming musical scales",
	Run: func(cmd *cobra.Command, args []string) {
		scaletui.Run(scaletui.Config{
			Questions:     questionsVar,
			InputPath:     inputVar,
			OutputPath:    outputVar,
			Difficulty:    scalebook.Clamp(difficultyVar),
			SoundFontPath: soundFontVar,
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every scale in the bank as a MIDI file",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := theory.NoteFromName(exportRootVar)
		if err != nil {
			return fmt.Errorf("root %q: %w", exportRootVar, err)
		}

		in, err := os.Open(inputVar)
		if err != nil {
			return fmt.Errorf("open scale bank: %w", err)
		}
		defer in.Close()
		book, err := scalebook.Load(in)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(exportOutDirVar, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		for _, entry := range book.Entries() {
			rs, err := theory.Realise(root, entry.Scale)
			if err != nil {
				return fmt.Errorf("scale %q: %w", entry.Name, err)
			}
			filename := strings.ReplaceAll(entry.Name, " ", "_") + ".mid"
			path := filepath.Join(exportOutDirVar, filename)
			if err := smfout.WriteFile(rs, entry.Name, path); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputVar, "input", "i", "./scales.csv", "path to the scale bank CSV")

	rootCmd.Flags().IntVarP(&questionsVar, "questions", "n", 5, "number of questions to ask")
	rootCmd.Flags().StringVarP(&outputVar, "output", "o", "./results.csv", "where to write the session results")
	rootCmd.Flags().IntVarP(&difficultyVar, "difficulty", "d", 1, "difficulty: 0 easy, 1 medium, 2 hard")
	rootCmd.Flags().StringVar(&soundFontVar, "soundfont", "", "path to an SF2 SoundFont for playback")

	exportCmd.Flags().StringVar(&exportRootVar, "root", "C4", "root note to realise every scale from")
	exportCmd.Flags().StringVar(&exportOutDirVar, "out-dir", "./midi", "directory for the .mid files")

	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
