// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

const (
	bash       = "bash"
	zsh        = "zsh"
	fish       = "fish"
	powershell = "powershell"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion SHELL",
	Short: "generate completions for the foldersort command",
	Long: `Generate completions for your shell

	For bash add the following line to your ~/.bashrc

		eval "$(foldersort completion bash)"

	For zsh add generate a file:

		foldersort completion zsh > /usr/local/share/zsh/site-functions/_foldersort

	For fish:

		foldersort completion fish > ~/.config/fish/completions/foldersort.fish
	`,
	ValidArgs: []string{bash, zsh, fish, powershell},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),

	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case bash:
			err = rootCmd.GenBashCompletion(out)
		case zsh:
			err = rootCmd.GenZshCompletion(out)
		case fish:
			err = rootCmd.GenFishCompletion(out, true)
		case powershell:
			err = rootCmd.GenPowerShellCompletion(out)
		}
		if err != nil {
			wrapFatalln("failed to generate "+args[0]+" completion", err)
			return
		}
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}
