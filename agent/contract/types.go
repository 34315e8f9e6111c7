package contract

import (
	"fmt"
	"strings"
)

type ToolRequest struct {
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Content is the text relayed back to the dispatcher for this result.
func (r ToolResult) Content() string {
	if strings.TrimSpace(r.Error) != "" {
		return r.Error
	}
	switch v := r.Result.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
