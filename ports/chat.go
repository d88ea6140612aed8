package ports

import "context"

// ChatClient answers a natural-language question about a dashboard.
// Implementations wrap a remote LLM; a nil client means the service
// answers locally.
type ChatClient interface {
	Answer(ctx context.Context, prompt string) (string, error)
}
