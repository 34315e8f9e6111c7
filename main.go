package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/gala-concierge/agent/bootstrap"
	"github.com/tanpawarit/gala-concierge/agent/console"
	"github.com/tanpawarit/gala-concierge/agent/dispatcher"
	"github.com/tanpawarit/gala-concierge/agent/llm"
	"github.com/tanpawarit/gala-concierge/agent/prompt"
	toolx "github.com/tanpawarit/gala-concierge/agent/tool"
	_ "github.com/tanpawarit/gala-concierge/pkg/logger/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("gala concierge stopped")
	}
}

func run(ctx context.Context) error {
	out := console.NewPrinter(os.Stdout, console.WithColor(isatty.IsTerminal(os.Stdout.Fd())))

	llmCfg, err := bootstrap.Load[llm.Config]("HF")
	if err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	if err := llmCfg.Validate(); err != nil {
		return err
	}

	prompts := prompt.LoadPromptSet()
	if err := prompts.Validate(); err != nil {
		return err
	}

	out.Status("Loading the guest book 📖")
	belt, closeGuests, err := bootstrap.Toolbelt(ctx)
	if err != nil {
		return fmt.Errorf("build toolbelt: %w", err)
	}
	defer closeGuests()
	out.Divider()

	out.Status("Connecting Remote LLM 🛰️")
	inferenceCfg := llmCfg.Inference()
	chatModel, err := inferenceCfg.New(ctx)
	if err != nil {
		return err
	}
	out.Divider()

	out.Status("Initializing Agent's Tools... 🛠️")
	infos, executor := toolx.BuildForToolbelt(belt)
	out.Divider()

	out.Status("Creating Agent's Workflow...")
	alfred, err := dispatcher.New(ctx, chatModel, infos, executor, dispatcher.Config{
		SystemPrompt: prompts.Dispatcher,
		MaxSteps:     llmCfg.MaxSteps,
	})
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}
	out.Ready("👍 Agent built and Ready")
	out.Divider()

	return console.Run(ctx, os.Stdin, out, alfred)
}
