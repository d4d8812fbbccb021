// Package translate provides optional Russian-translation backends for
// foreign-language news items. All backends share the same single-method
// surface; callers treat translation as best-effort.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// LibreTranslator calls a LibreTranslate instance over plain HTTP.
type LibreTranslator struct {
	url    string
	target string
	client *http.Client
}

func NewLibreTranslator(url string, timeout time.Duration) *LibreTranslator {
	return &LibreTranslator{
		url:    url,
		target: "ru",
		client: &http.Client{Timeout: timeout},
	}
}

func (t *LibreTranslator) Translate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "auto",
		"target": t.target,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.TranslatedText, nil
}
