package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

const defaultPushLimit = 20

// GetPushNotificationsInput is the input for the get_push_notifications tool.
type GetPushNotificationsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum notifications to return (default 20)."`
}

// PushNotificationsData is the structured output of get_push_notifications.
type PushNotificationsData struct {
	Notifications []mastertour.PushNotification `json:"notifications"`
	TotalFound    int                           `json:"totalFound"`
}

// getPushNotifications lists previously sent push notifications, most
// recent first.
func (s *Set) getPushNotifications(ctx context.Context, in GetPushNotificationsInput) (*PushNotificationsData, string, error) {
	if in.Limit < 0 {
		return nil, "", validationf("limit must not be negative")
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultPushLimit
	}

	pns, err := s.client.GetPushHistory(ctx)
	if err != nil {
		return nil, "", err
	}

	sort.SliceStable(pns, func(i, j int) bool { return pns[i].SentAt > pns[j].SentAt })

	total := len(pns)
	if len(pns) > limit {
		pns = pns[:limit]
	}

	data := &PushNotificationsData{Notifications: pns, TotalFound: total}
	return data, renderPushNotifications(data), nil
}

func renderPushNotifications(d *PushNotificationsData) string {
	if d.TotalFound == 0 {
		return "No push notifications have been sent."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📣 %d notification(s)", d.TotalFound)
	if len(d.Notifications) < d.TotalFound {
		fmt.Fprintf(&b, ", showing the %d most recent", len(d.Notifications))
	}
	b.WriteString(":\n")
	for _, pn := range d.Notifications {
		fmt.Fprintf(&b, "\n• %s", format.Field(pn.Title))
		if pn.SentAt != "" {
			fmt.Fprintf(&b, " — %s", format.Date(pn.SentAt))
		}
		if msg := format.Field(pn.Message); msg != "" {
			fmt.Fprintf(&b, "\n  %s", msg)
		}
		if by := format.Field(pn.SentBy); by != "" {
			fmt.Fprintf(&b, "\n  Sent by %s", by)
		}
		b.WriteString("\n")
	}
	return b.String()
}
