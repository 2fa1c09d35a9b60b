package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skysheet",
	Short: "Transcribes audio into 15-key sheet notation",
	Long:  `Transcribes audio into 15-key sheet notation playable in-game.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
