package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Notification is a user-facing message about a failed lookup or open.
type Notification struct {
	Title   string
	Message string
	Kind    string // models.ErrorKind value, empty when unknown
	Time    time.Time
}

// Notifier delivers notifications to the user or an external channel.
type Notifier interface {
	Notify(n Notification) error
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(n Notification) error

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) error { return f(n) }

// MultiNotifier fans a notification out to every wrapped notifier. All
// notifiers are called even if some fail; their errors are joined.
type MultiNotifier []Notifier

// Notify delivers n to each notifier in order.
func (m MultiNotifier) Notify(n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	notifyBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
	notifyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	notifyKindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// terminalNotifier renders notifications as a bordered error box.
type terminalNotifier struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTerminalNotifier creates a Notifier that writes an error box to w.
func NewTerminalNotifier(w io.Writer) Notifier {
	return &terminalNotifier{w: w}
}

// Notify writes the rendered box followed by a newline.
func (t *terminalNotifier) Notify(n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := fmt.Fprintln(t.w, RenderNotification(n)); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// RenderNotification returns the boxed terminal rendering of n.
func RenderNotification(n Notification) string {
	title := n.Title
	if title == "" {
		title = "Error"
	}
	lines := []string{notifyTitleStyle.Render(title), n.Message}
	if n.Kind != "" {
		lines = append(lines, notifyKindStyle.Render("("+n.Kind+")"))
	}
	return notifyBoxStyle.Render(strings.Join(lines, "\n"))
}

// slackNotifier sends notifications to a Slack webhook.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier that posts to the given Slack webhook URL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify posts n to the configured Slack webhook.
func (s *slackNotifier) Notify(n Notification) error {
	body, err := json.Marshal(s.buildMessage(n))
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (s *slackNotifier) buildMessage(n Notification) slackMessage {
	title := n.Title
	if title == "" {
		title = "jobnav error"
	}
	when := n.Time
	if when.IsZero() {
		when = time.Now()
	}

	text := fmt.Sprintf("\U0001f534 %s\n_%s_", n.Message, when.UTC().Format("2006-01-02 15:04 UTC"))
	if n.Kind != "" {
		text = fmt.Sprintf("\U0001f534 *[%s]* %s\n_%s_", n.Kind, n.Message, when.UTC().Format("2006-01-02 15:04 UTC"))
	}

	return slackMessage{Blocks: []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: title}},
		{Type: "section", Text: &slackText{Type: "mrkdwn", Text: text}},
	}}
}
