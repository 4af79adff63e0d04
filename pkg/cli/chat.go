package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/opsintake/incident-wizard/pkg/cli/config"
	"github.com/opsintake/incident-wizard/pkg/domain/model"
	"github.com/opsintake/incident-wizard/pkg/domain/types"
)

func cmdChat() *cli.Command {
	var geminiCfg config.Gemini
	var snowCfg config.ServiceNow
	var intakeCfg config.Intake
	var slackCfg config.Slack

	var flags []cli.Flag
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, snowCfg.Flags()...)
	flags = append(flags, intakeCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Run an interactive intake session in the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := buildUseCases(ctx, &geminiCfg, &snowCfg, &intakeCfg, &slackCfg)
			if err != nil {
				return err
			}

			return runChat(ctx, uc.Intake)
		},
	}
}

// turnRunner advances a conversation by one exchange
type turnRunner interface {
	HandleTurn(ctx context.Context, conversation model.Conversation) (*model.TurnResult, error)
}

// runChat is the interactive loop. The conversation history lives in
// this function for the duration of the session.
func runChat(ctx context.Context, uc turnRunner) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("you> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create readline")
	}
	defer rl.Close()

	fmt.Println("Incident Wizard. Describe your issue; type \"exit\" to quit.")

	var conversation model.Conversation

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			return nil
		}

		conversation = append(conversation, model.Message{
			Role:    types.RoleUser,
			Content: line,
		})

		result, err := uc.HandleTurn(ctx, conversation)
		if err != nil {
			fmt.Printf("%s %v\n", red("Error:"), err)
			// Drop the failed turn so the next input retries cleanly
			conversation = conversation[:len(conversation)-1]
			continue
		}

		switch {
		case result.Submitted:
			fmt.Printf("%s %s\n", green("wizard>"), result.Reply)
			// A filed incident ends the session's gathering phase
			conversation = nil
		case result.MalformedPayload:
			fmt.Printf("%s the summary could not be parsed as an incident. Please rephrase and try again.\n", yellow("wizard>"))
			conversation = append(conversation, model.Message{
				Role:    types.RoleAssistant,
				Content: result.Reply,
			})
		default:
			fmt.Printf("%s %s\n", cyan("wizard>"), result.Reply)
			conversation = append(conversation, model.Message{
				Role:    types.RoleAssistant,
				Content: result.Reply,
			})
		}
	}
}
