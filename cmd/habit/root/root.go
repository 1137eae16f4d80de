package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "habit",
	Short:         "Habit.exe — retro terminal habit tracker",
	Long:          "Habit.exe tracks recurring directives, awards XP per log and maps your total to a military rank ladder.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newListCmd(),
		newLogCmd(),
		newAddCmd(),
		newRmCmd(),
		newEditCmd(),
		newRanksCmd(),
		newLogsCmd(),
		newOperatorCmd(),
		newExportCmd(),
		newImportCmd(),
		newAnalyzeCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("err: "+err.Error()))
		os.Exit(1)
	}
}
