package dispatchnode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	toolx "github.com/tanpawarit/gala-concierge/agent/tool"
)

// RunTools alternates model turns and tool executions until the model answers
// without tool calls. Tool calls are executed one at a time in the order the
// model emitted them.
func RunTools(
	ctx context.Context,
	in *GraphState,
	chatModel einomodel.BaseChatModel,
	executor toolx.Executor,
	systemPrompt string,
	maxSteps int,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Messages = []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(in.Text),
	}

	for in.Steps = 0; in.Steps <= maxSteps; in.Steps++ {
		msg, err := chatModel.Generate(ctx, in.Messages)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return nil, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}

		requests, err := toToolRequests(msg.ToolCalls)
		if err != nil {
			return nil, err
		}
		if len(requests) == 0 {
			in.Message = msg.Content
			return in, nil
		}
		if in.Steps == maxSteps {
			break
		}

		in.Messages = append(in.Messages, msg)
		for _, req := range requests {
			log.Debug().
				Str("turn_id", in.TurnID).
				Str("tool", req.Tool).
				Interface("args", req.Args).
				Int("step", in.Steps).
				Msg("dispatching tool")

			res, err := executor(ctx, req.Tool, req.Args)
			if err != nil {
				return nil, fmt.Errorf("execute tool=%s: %w", req.Tool, err)
			}
			in.Messages = append(in.Messages, schema.ToolMessage(res.Content(), req.CallID))
		}
	}

	return nil, fmt.Errorf("%w: %w after %d steps", contractx.ErrSchemaViolation, ErrStepLimit, maxSteps)
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			CallID: call.ID,
			Tool:   tool,
			Args:   args,
		})
	}
	return reqs, nil
}
