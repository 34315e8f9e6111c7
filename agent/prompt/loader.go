package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

//go:embed template/dispatcher.txt
var dispatcherRaw string

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Dispatcher string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Dispatcher: strings.TrimSpace(dispatcherRaw),
	}
}

func (p PromptSet) Validate() error {
	if strings.TrimSpace(p.Dispatcher) == "" {
		return fmt.Errorf("%w: dispatcher", contractx.ErrPromptMissing)
	}
	return nil
}
