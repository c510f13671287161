package main

import (
	"os"

	"github.com/spf13/cobra"

	"chatrelay/pkg/cli"
	"chatrelay/pkg/gateway"
)

var chatFlags struct {
	provider string
	model    string
}

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a message through the gateway",
	Long: `Send a message to a provider and print the normalized result as the
same JSON envelope the HTTP API serves from POST /chat.

An unknown --provider does not fail the call; the configured default
provider carries it instead.

Examples:
  chatrelay chat "hello"
  chatrelay chat "hello" --provider bing
  chatrelay chat "hello" --provider you --model gpt-3.5-turbo`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		formatter := &cli.JSONFormatter{Indent: true}

		a, err := loadApp(false)
		if err != nil {
			formatter.FormatTo(os.Stdout, cli.NewFailure(err))
			os.Exit(1)
		}
		defer a.close()

		result := a.gateway.SendMessage(cmd.Context(), gateway.ChatRequest{
			Message:  args[0],
			Provider: chatFlags.provider,
			Model:    chatFlags.model,
		})

		formatter.FormatTo(os.Stdout, cli.ResponseEnvelope{
			Success:  result.Success,
			Response: result,
		})
		if !result.Success {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&chatFlags.provider, "provider", "p", "", "provider id to use")
	chatCmd.Flags().StringVarP(&chatFlags.model, "model", "m", "", "model to request")
}
