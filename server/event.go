package server

import (
	"net/http"
	"time"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/events"
)

// reportEventFromRequest extracts data from the request and sets up a
// standard set of fields on the event model. Handlers fill in the action
// and object identity before publishing.
func reportEventFromRequest(r *http.Request, sessionID string, caller Caller) events.ReportEvent {
	return events.ReportEvent{
		Action:    "unknown",
		UserID:    caller.UserID,
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
