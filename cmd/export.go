package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/skysheet/midi"
	"github.com/jsphweid/skysheet/scale"
	"github.com/jsphweid/skysheet/sheet"
	"github.com/spf13/cobra"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output MIDI path (defaults to the sheet path with .mid)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <sheet.json>",
	Short: "Exports a saved sheet as a MIDI file",
	Long:  `Exports a saved sheet as a MIDI file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(export(args[0], exportOut))
	},
}

func export(path, out string) error {
	s, err := sheet.Load(path)
	if err != nil {
		return err
	}

	if out == "" {
		out = strings.TrimSuffix(path, ".json") + ".mid"
	}

	if err := midi.WriteSheet(s, scale.Default(), out); err != nil {
		return err
	}

	fmt.Printf("MIDI saved to: %v (%v notes)\n", out, len(s.SongNotes))
	return nil
}
