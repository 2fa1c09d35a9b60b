package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/skysheet/db"
	"github.com/jsphweid/skysheet/sheet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <sheet.json>",
	Short: "Inspects a saved sheet",
	Long:  `Inspects a saved sheet`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(inspect(args[0]))
	},
}

func inspect(path string) error {
	s, err := sheet.Load(path)
	if err != nil {
		return err
	}

	chords := 0
	var lastTime float64
	for i, n := range s.SongNotes {
		if i == 0 || n.Time != lastTime {
			chords++
			lastTime = n.Time
		}
	}

	fmt.Printf("name: %v\n", s.Name)
	fmt.Printf("author: %v\n", s.Author)
	fmt.Printf("transcribedBy: %v\n", s.TranscribedBy)
	fmt.Printf("bpm: %v\n", s.BPM)
	fmt.Printf("notes: %v\n", len(s.SongNotes))
	fmt.Printf("chords: %v\n", chords)

	if db.Enabled() {
		filename := filepath.Base(path)
		metas, err := db.GetSheetMetadatas([]string{filename})
		if err != nil {
			fmt.Printf("metadata lookup failed: %v\n", err)
			return nil
		}
		if m, ok := metas[filename]; ok {
			fmt.Printf("metadata record: %+v\n", m)
		}
	}
	return nil
}
