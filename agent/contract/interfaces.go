package contract

import "context"

// Dispatcher maps a user utterance to zero or more tool calls and returns the
// composed reply.
type Dispatcher interface {
	HandleMessage(ctx context.Context, text string) (string, error)
}

type WebSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}
