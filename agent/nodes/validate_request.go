package dispatchnode

import (
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrStepLimit      = errors.New("tool call step limit reached")
)

type GraphInput struct {
	Text string
}

type GraphOutput struct {
	Reply string
}

type GraphState struct {
	TurnID string
	Text   string

	Messages []*schema.Message
	Steps    int

	Message string
}

func ValidateRequest(in GraphInput, newTurnID func() string) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		TurnID: newTurnID(),
		Text:   text,
	}, nil
}
