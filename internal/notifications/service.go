package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cellar/internal/config"
)

const userAgent = "cellar/1.0"

// Service defines the notification surface exposed to the launcher
// components.
type Service interface {
	NotifyLaunch(ctx context.Context, name, bottle string) error
	NotifySessionRecorded(ctx context.Context, name string, seconds int64) error
	NotifyImportCompleted(ctx context.Context, count int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		settings: cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	settings config.Notifications
}

func (n *ntfyService) NotifyLaunch(ctx context.Context, name, bottle string) error {
	if !n.settings.Launch {
		return nil
	}
	name = strings.TrimSpace(name)
	bottle = strings.TrimSpace(bottle)
	message := fmt.Sprintf("Launched: %s", name)
	if bottle != "" {
		message = fmt.Sprintf("%s (%s)", message, bottle)
	}
	data := payload{
		title:   "Cellar - Launched",
		message: message,
		tags:    []string{"cellar", "launch"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySessionRecorded(ctx context.Context, name string, seconds int64) error {
	if !n.settings.Sessions {
		return nil
	}
	name = strings.TrimSpace(name)
	duration := (time.Duration(seconds) * time.Second).String()
	data := payload{
		title:   "Cellar - Session Ended",
		message: fmt.Sprintf("%s: played %s", name, duration),
		tags:    []string{"cellar", "session"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyImportCompleted(ctx context.Context, count int) error {
	if !n.settings.Import {
		return nil
	}
	data := payload{
		title:   "Cellar - Import Complete",
		message: fmt.Sprintf("Added %d instances to the catalogue", count),
		tags:    []string{"cellar", "import", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.settings.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Cellar - Error",
		message:  builder.String(),
		tags:     []string{"cellar", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Cellar - Test",
		message:  "Notification system test",
		tags:     []string{"cellar", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyLaunch(context.Context, string, string) error           { return nil }
func (noopService) NotifySessionRecorded(context.Context, string, int64) error   { return nil }
func (noopService) NotifyImportCompleted(context.Context, int) error             { return nil }
func (noopService) NotifyError(context.Context, error, string) error             { return nil }
func (noopService) TestNotification(context.Context) error                       { return nil }
