package translate

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ollama/ollama/api"
)

type OllamaTranslator struct {
	client  *api.Client
	model   string
	timeout time.Duration
	mu      sync.Mutex
}

func NewOllamaTranslator(baseURL, model string, timeout time.Duration) *OllamaTranslator {
	httpClient := &http.Client{}

	c := api.NewClient(&url.URL{
		Scheme: "http",
		Host:   baseURL,
		Path:   "/",
	}, httpClient)

	return &OllamaTranslator{
		client:  c,
		model:   model,
		timeout: timeout,
	}
}

func (t *OllamaTranslator) Translate(ctx context.Context, text string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	req := &api.GenerateRequest{
		Model:  t.model,
		System: translatePrompt,
		Prompt: text,
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var responseFlow []string
	err := t.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		responseFlow = append(responseFlow, resp.Response)
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(responseFlow, ""), nil
}
