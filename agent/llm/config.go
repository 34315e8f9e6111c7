package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	inferencex "github.com/tanpawarit/gala-concierge/pkg/inference"
)

// Config is loaded with the HF prefix.
type Config struct {
	Token              string        `split_words:"true" required:"true"`
	BaseURL            string        `split_words:"true" default:"https://router.huggingface.co/v1"`
	Model              string        `split_words:"true" default:"Qwen/Qwen2.5-Coder-32B-Instruct"`
	MaxCompletionToken int           `split_words:"true" default:"2000"`
	Temperature        float32       `split_words:"true" default:"0.5"`
	Timeout            time.Duration `split_words:"true" default:"60s"`
	MaxSteps           int           `split_words:"true" default:"6"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: hugging face token is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model is required", contractx.ErrConfiguration)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", contractx.ErrConfiguration, c.MaxSteps)
	}
	return nil
}

func (c Config) Inference() inferencex.Config {
	maxCompletionToken := c.MaxCompletionToken
	return inferencex.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.Token),
		Model:              strings.TrimSpace(c.Model),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
	}
}
