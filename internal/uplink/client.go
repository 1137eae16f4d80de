// Package uplink calls the external text-generation collaborator for
// tactical-analysis briefs. Failures surface as fixed sentinel strings,
// never as panics or retries; the engine treats them as ordinary log
// messages.
package uplink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Sentinel replies. These are log-message text, not errors.
const (
	ReplyNoKey  = "err: no_uplink // api_key_missing"
	ReplyEmpty  = "err: empty_response"
	ReplyFailed = "err: uplink_failed // retry_later"
)

// ErrBusy is returned while a previous request is still in flight; at
// most one analysis runs at a time.
var ErrBusy = errors.New("uplink busy")

// IsSentinel reports whether text is one of the fixed failure replies.
// Callers log sentinels as errors rather than analysis output.
func IsSentinel(text string) bool {
	switch text {
	case ReplyNoKey, ReplyEmpty, ReplyFailed:
		return true
	}
	return false
}

// Config for the uplink client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultConfig reads the API key from the environment.
func DefaultConfig() Config {
	return Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com",
		Model:   "gemini-2.5-flash",
		Timeout: 30 * time.Second,
	}
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	busy       atomic.Bool
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Busy reports whether a request is currently in flight.
func (c *Client) Busy() bool { return c.busy.Load() }

// HabitBrief is the slice of habit state the collaborator sees.
type HabitBrief struct {
	Name   string
	Streak int
}

// StatsBrief is the progression summary included in the prompt.
type StatsBrief struct {
	RankTitle string
	XP        int
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// TacticalAnalysis requests a short lowercase status line from the
// collaborator. The returned string is always printable log text: a
// model reply or one of the sentinels. The only error is ErrBusy.
func (c *Client) TacticalAnalysis(ctx context.Context, stats StatsBrief, habits []HabitBrief) (string, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer c.busy.Store(false)

	if c.apiKey == "" {
		return ReplyNoKey, nil
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(stats, habits)}}}},
	})
	if err != nil {
		return ReplyFailed, nil
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ReplyFailed, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ReplyFailed, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return ReplyFailed, nil
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ReplyFailed, nil
	}
	text := ""
	if len(parsed.Candidates) > 0 && len(parsed.Candidates[0].Content.Parts) > 0 {
		text = strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	}
	if text == "" {
		return ReplyEmpty, nil
	}
	return strings.ToLower(text), nil
}

func buildPrompt(stats StatsBrief, habits []HabitBrief) string {
	var b strings.Builder
	b.WriteString("SYSTEM ROLE: You are a system interface AI for a code-styled habit tracker.\n")
	b.WriteString("TONE: Minimalist, lower-case, technical but calm.\n")
	b.WriteString("TASK: Analyze the user's current habit performance and generate a short status update.\n\n")
	b.WriteString("DATA:\n")
	fmt.Fprintf(&b, "Current Rank: %s\n", stats.RankTitle)
	fmt.Fprintf(&b, "Current XP: %d\n", stats.XP)
	b.WriteString("Habits:\n")
	for _, h := range habits {
		fmt.Fprintf(&b, "- %s: Streak %d\n", h.Name, h.Streak)
	}
	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("- Output must be strictly lowercase.\n")
	b.WriteString("- If streaks are high, output \"efficiency: optimal\".\n")
	b.WriteString("- If streaks are low, output \"status: degradation detected\".\n")
	b.WriteString("- Keep it under 30 words.\n")
	b.WriteString("- Style it like a system log message or a code comment.\n")
	b.WriteString("- No markdown formatting.\n")
	b.WriteString("- Use snake_case where appropriate for technical terms.\n")
	return b.String()
}
