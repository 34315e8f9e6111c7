package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	nodex "github.com/tanpawarit/gala-concierge/agent/nodes"
	toolx "github.com/tanpawarit/gala-concierge/agent/tool"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrStepLimit      = nodex.ErrStepLimit
)

const DefaultMaxSteps = 6

type Config struct {
	SystemPrompt string
	MaxSteps     int
}

// Dispatcher lets a tool-calling chat model answer one utterance at a time
// using the tool catalog.
type Dispatcher struct {
	model        einomodel.BaseChatModel
	executor     toolx.Executor
	systemPrompt string
	maxSteps     int

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	newTurnID func() string
}

var _ contractx.Dispatcher = (*Dispatcher)(nil)

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	tools []*schema.ToolInfo,
	executor toolx.Executor,
	cfg Config,
) (*Dispatcher, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if executor == nil {
		return nil, errors.New("tool executor is required")
	}
	systemPrompt := strings.TrimSpace(cfg.SystemPrompt)
	if systemPrompt == "" {
		return nil, fmt.Errorf("%w: dispatcher system prompt", contractx.ErrPromptMissing)
	}
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
	}

	d := &Dispatcher{
		model:        toolModel,
		executor:     executor,
		systemPrompt: systemPrompt,
		maxSteps:     maxSteps,
		newTurnID:    uuid.NewString,
	}

	graphRunner, err := d.compileHandleMessageGraph(ctx)
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

func (d *Dispatcher) HandleMessage(ctx context.Context, text string) (string, error) {
	out, err := d.graphRunner.Invoke(ctx, nodex.GraphInput{Text: text})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
