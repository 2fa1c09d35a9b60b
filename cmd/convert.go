package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/skysheet/analysis"
	"github.com/jsphweid/skysheet/audio"
	"github.com/jsphweid/skysheet/constants"
	"github.com/jsphweid/skysheet/pipeline"
	"github.com/jsphweid/skysheet/progress"
	"github.com/spf13/cobra"
)

var convertTitle string

func init() {
	convertCmd.Flags().StringVar(&convertTitle, "title", "", "song title (defaults to the file name)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <audio-file>",
	Short: "Converts a local audio file to a sheet",
	Long:  `Converts a local audio file to a sheet`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runConvert(args[0], convertTitle))
	},
}

func runConvert(path, title string) error {
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	cfg := pipeline.DefaultConfig()
	t := progress.NewTracker(0)
	conv := pipeline.NewConverter(cfg, t,
		analysis.New(constants.GetScriptsDir(), cfg.ConfidenceThreshold))

	res, err := conv.Run(context.Background(), "", title, &audio.FileAcquirer{Path: path})
	if err != nil {
		return err
	}

	fmt.Printf("Sheet saved to: %v (%v notes)\n", res.SheetPath, res.NotesCount)
	return nil
}
