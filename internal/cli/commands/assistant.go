package commands

import (
	"context"
	"fmt"
	"strings"

	"Saarthi/internal/assistant"
	"Saarthi/internal/config"
	"Saarthi/internal/service"
)

type summaryCmd struct{}

func (summaryCmd) Name() string        { return "summary" }
func (summaryCmd) Description() string { return "Show the assistant summary of a resource" }
func (summaryCmd) Usage() string       { return "summary <id>" }

func (summaryCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		doc, err := v.Document(ctx, args[0])
		if err != nil {
			return err
		}
		sess := assistant.NewSession(ctx, doc, delays(cfg))
		defer sess.Close()
		fmt.Fprintln(Out, "Analyzing document...")
		summary, err := sess.Summary(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, summary)
		return nil
	})
}

type askCmd struct{}

func (askCmd) Name() string        { return "ask" }
func (askCmd) Description() string { return "Ask the assistant a question about a resource" }
func (askCmd) Usage() string       { return "ask <id> <question...>" }

func (askCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || args[0] == "" {
		return ErrUsage
	}
	question := strings.TrimSpace(strings.Join(args[1:], " "))
	if question == "" {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		doc, err := v.Document(ctx, args[0])
		if err != nil {
			return err
		}
		d := delays(cfg)
		d.Summary = 0 // для вопроса краткое содержание не нужно
		sess := assistant.NewSession(ctx, doc, d)
		defer sess.Close()
		task, err := sess.Ask(question)
		if err != nil {
			return err
		}
		reply, err := task.Wait(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "You: %s\n", question)
		fmt.Fprintf(Out, "Assistant: %s\n", reply.Content)
		return nil
	})
}

func delays(cfg *config.Config) assistant.Delays {
	d := assistant.DefaultDelays
	if cfg.SummaryDelay > 0 {
		d.Summary = cfg.SummaryDelay
	}
	if cfg.AnswerDelay > 0 {
		d.Answer = cfg.AnswerDelay
	}
	return d
}

func init() {
	RegisterCmd(summaryCmd{})
	RegisterCmd(askCmd{})
}
