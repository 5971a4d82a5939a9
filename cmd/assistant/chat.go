package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/alchemorsel-v2/assistant/internal/shell"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive cooking session",
	Long: `chat reads one command per line and prints the assistant's reply.

End a line with a backslash to continue it, which is handy for pasting an
ingredient list. Type "exit", "quit" or "bye" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		defer a.Close()

		styles := shell.DefaultStyles()
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			styles = shell.PlainStyles()
		}

		sh := shell.New(a.toolbox, cmd.InOrStdin(), cmd.OutOrStdout(),
			shell.WithStyles(styles),
			shell.WithLogger(a.logger.Named("shell")))
		return sh.Run(cmd.Context())
	},
}

func init() {
	chatCmd.Flags().Bool("plain", false, "disable colored output")

	rootCmd.AddCommand(chatCmd)
}
