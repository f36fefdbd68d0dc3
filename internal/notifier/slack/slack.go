package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pkhk-scout/internal/metrics"
	"github.com/mauv0809/pkhk-scout/internal/notifier"
	"github.com/mauv0809/pkhk-scout/internal/report"
	"github.com/slack-go/slack"
)

// maxListedMembers keeps the member section well below Slack's 3000 character
// limit for a text object.
const maxListedMembers = 40

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts run summaries to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// SendRunSummary posts the outcome of a run.
func (s *Notifier) SendRunSummary(summary *report.RunSummary, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRunSummary(summary), dryRun)
	return err
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Sent Slack run summary", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// formatRunSummary builds the Block Kit message for a finished run.
func (s *Notifier) formatRunSummary(summary *report.RunSummary) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏊 %s member lookup finished", summary.Club), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := fmt.Sprintf("Names searched: %d\nFailed lookups: %d\nMembers found: %d",
		summary.Names, summary.FailedLookups, summary.MatchCount())
	if summary.Skipped > 0 {
		details += fmt.Sprintf("\nSkipped (incomplete records): %d", summary.Skipped)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	if len(summary.Members) > 0 {
		lines := make([]string, 0, maxListedMembers+1)
		for i, p := range summary.Members {
			if i == maxListedMembers {
				lines = append(lines, fmt.Sprintf("…and %d more", len(summary.Members)-maxListedMembers))
				break
			}
			lines = append(lines, fmt.Sprintf("• %s (%s)", p.FullName(), p.UserID))
		}
		membersText := "Members:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", membersText, true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("No %s members found.", summary.Club), true, false), nil, nil))
	}

	contextText := fmt.Sprintf("Run %s · %s · took %s", summary.RunID, summary.StartedAt.Format("Monday 02 Jan, 15:04"), summary.Duration.Round(time.Second))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}
