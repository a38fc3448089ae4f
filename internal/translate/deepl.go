package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultDeepLBaseURL = "https://api-free.deepl.com"

// DeepL is the Provider backed by the DeepL REST API (free-tier host by
// default).
type DeepL struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDeepL(apiKey string, timeout time.Duration) *DeepL {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DeepL{
		apiKey:  apiKey,
		baseURL: defaultDeepLBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewDeepLWithBaseURL exists for tests pointed at a local server.
func NewDeepLWithBaseURL(apiKey, baseURL string, timeout time.Duration) *DeepL {
	d := NewDeepL(apiKey, timeout)
	d.baseURL = strings.TrimRight(baseURL, "/")
	return d
}

func (d *DeepL) Translate(ctx context.Context, text, targetLang string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v2/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("translate: build request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrInvalidAuth
	case 456: // DeepL's quota-exceeded status
		return "", ErrQuotaExceeded
	default:
		return "", fmt.Errorf("translate: deepl status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read response: %w", err)
	}

	var parsed struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	if len(parsed.Translations) == 0 {
		return "", ErrEmptyResult
	}
	return parsed.Translations[0].Text, nil
}
