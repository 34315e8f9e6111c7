package dispatcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	toolx "github.com/tanpawarit/gala-concierge/agent/tool"
)

type fakeToolCallingModel struct {
	mu        sync.Mutex
	responses []*schema.Message
	err       error
	idx       int
	inputs    [][]*schema.Message
	tools     []*schema.ToolInfo
}

func (f *fakeToolCallingModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := make([]*schema.Message, len(input))
	copy(snapshot, input)
	f.inputs = append(f.inputs, snapshot)

	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeToolCallingModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeToolCallingModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	f.tools = tools
	return f, nil
}

type recordedCall struct {
	tool string
	args map[string]any
}

type fakeExecutor struct {
	mu    sync.Mutex
	calls []recordedCall
	out   map[string]string
}

func (f *fakeExecutor) Execute(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{tool: tool, args: args})
	return contractx.ToolResult{Tool: tool, Result: f.out[tool]}, nil
}

func toolCall(id, name, args string) schema.ToolCall {
	return schema.ToolCall{
		ID:   id,
		Type: "function",
		Function: schema.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func newTestDispatcher(t *testing.T, model *fakeToolCallingModel, exec toolx.Executor, maxSteps int) *Dispatcher {
	t.Helper()

	d, err := New(context.Background(), model, toolx.Infos(), exec, Config{
		SystemPrompt: "You are Alfred.",
		MaxSteps:     maxSteps,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.newTurnID = func() string { return "turn-1" }
	return d
}

func TestHandleMessageDirectReply(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: "  Good evening, sir.  "},
		},
	}
	exec := &fakeExecutor{}
	d := newTestDispatcher(t, model, exec.Execute, 3)

	reply, err := d.HandleMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply != "Good evening, sir." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("expected no tool calls, got %d", len(exec.calls))
	}
	if len(model.tools) != 4 {
		t.Fatalf("expected 4 bound tools, got %d", len(model.tools))
	}
	if got := model.inputs[0]; len(got) != 2 || got[0].Role != schema.System || got[1].Content != "hello" {
		t.Fatalf("unexpected first model input: %#v", got)
	}
}

func TestHandleMessageRunsToolCallsInOrder(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					toolCall("call_1", toolx.ToolSearchGuests, `{"query":"Lady Ada"}`),
					toolCall("call_2", toolx.ToolGetWeather, `{"city":"Portland"}`),
				},
			},
			{Role: schema.Assistant, Content: "Lady Ada is here, and Portland is sunny, sir."},
		},
	}
	exec := &fakeExecutor{out: map[string]string{
		toolx.ToolSearchGuests: "Name: Ada Lovelace",
		toolx.ToolGetWeather:   "City: Portland",
	}}
	d := newTestDispatcher(t, model, exec.Execute, 3)

	reply, err := d.HandleMessage(context.Background(), "Who is Lady Ada and how is Portland?")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if !strings.Contains(reply, "Portland is sunny") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(exec.calls))
	}
	if exec.calls[0].tool != toolx.ToolSearchGuests || exec.calls[1].tool != toolx.ToolGetWeather {
		t.Fatalf("unexpected call order: %#v", exec.calls)
	}
	if exec.calls[0].args["query"] != "Lady Ada" {
		t.Fatalf("unexpected args: %#v", exec.calls[0].args)
	}

	second := model.inputs[1]
	if len(second) != 5 {
		t.Fatalf("expected 5 messages in second round, got %d", len(second))
	}
	if second[3].Role != schema.Tool || second[3].ToolCallID != "call_1" || second[3].Content != "Name: Ada Lovelace" {
		t.Fatalf("unexpected tool message: %#v", second[3])
	}
	if second[4].ToolCallID != "call_2" {
		t.Fatalf("unexpected tool message: %#v", second[4])
	}
}

func TestHandleMessageStepLimit(t *testing.T) {
	t.Parallel()

	loop := &schema.Message{
		Role:      schema.Assistant,
		ToolCalls: []schema.ToolCall{toolCall("call", toolx.ToolWebSearch, `{"query":"batman"}`)},
	}
	model := &fakeToolCallingModel{responses: []*schema.Message{loop, loop, loop}}
	exec := &fakeExecutor{}
	d := newTestDispatcher(t, model, exec.Execute, 2)

	_, err := d.HandleMessage(context.Background(), "search forever")
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 tool executions, got %d", len(exec.calls))
	}
}

func TestHandleMessageRejectsEmptyText(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{}
	exec := &fakeExecutor{}
	d := newTestDispatcher(t, model, exec.Execute, 2)

	_, err := d.HandleMessage(context.Background(), "   ")
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
	if len(model.inputs) != 0 {
		t.Fatal("model must not be called for empty input")
	}
}

func TestHandleMessageModelError(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{err: errors.New("503 from router")}
	exec := &fakeExecutor{}
	d := newTestDispatcher(t, model, exec.Execute, 2)

	_, err := d.HandleMessage(context.Background(), "hello")
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke, got %v", err)
	}
}

func TestHandleMessageInvalidToolArgs(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role:      schema.Assistant,
				ToolCalls: []schema.ToolCall{toolCall("call_1", toolx.ToolGetWeather, `{"city":`)},
			},
		},
	}
	exec := &fakeExecutor{}
	d := newTestDispatcher(t, model, exec.Execute, 2)

	_, err := d.HandleMessage(context.Background(), "weather?")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("expected no tool execution, got %d", len(exec.calls))
	}
}

func TestHandleMessageEmptyReply(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{responses: []*schema.Message{{Role: schema.Assistant, Content: " "}}}
	exec := &fakeExecutor{}
	d := newTestDispatcher(t, model, exec.Execute, 2)

	_, err := d.HandleMessage(context.Background(), "hello")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestNewRequiresPrompt(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), &fakeToolCallingModel{}, toolx.Infos(), toolx.DefaultExecutor(), Config{})
	if !errors.Is(err, contractx.ErrPromptMissing) {
		t.Fatalf("expected ErrPromptMissing, got %v", err)
	}
}
