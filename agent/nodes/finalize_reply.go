package dispatchnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Message)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: model returned empty reply", contractx.ErrSchemaViolation)
	}
	return GraphOutput{Reply: reply}, nil
}
