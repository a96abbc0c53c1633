package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
)

// TypeActivityLogEntry is the type name of activity log entries
const TypeActivityLogEntry = "ActivityLogEntry"

// ConfigurationItem is the generic tagged record handed over by the host.
// Only the attributes of activity log entries are decoded; other CI types
// carry just their id and type.
type ConfigurationItem struct {
	ID   string `json:"id"`
	Type string `json:"type"` // fully qualified, e.g. "xlrelease.ActivityLogEntry"

	ActivityType types.ActivityType `json:"activityType,omitempty"`
	Message      string             `json:"message,omitempty"`
	Username     string             `json:"username,omitempty"`
	EventTime    json.RawMessage    `json:"eventTime,omitempty"`
}

// TypeName returns the type without its namespace prefix
func (x ConfigurationItem) TypeName() string {
	if i := strings.LastIndex(x.Type, "."); i >= 0 {
		return x.Type[i+1:]
	}
	return x.Type
}

// ActivityLogEntry returns the CI as an activity log entry. The second
// return value is false when the CI is of another type.
func (x ConfigurationItem) ActivityLogEntry() (*ActivityLogEntry, bool) {
	if x.TypeName() != TypeActivityLogEntry {
		return nil, false
	}
	return &ActivityLogEntry{
		ID:           x.ID,
		ActivityType: x.ActivityType,
		Message:      x.Message,
		Username:     x.Username,
		EventTime:    x.EventTime,
	}, true
}

// ActivityLogEntry records a single audit event against a release or task
type ActivityLogEntry struct {
	ID           string
	ActivityType types.ActivityType
	Message      string
	Username     string
	EventTime    json.RawMessage
}

const releaseIDPrefix = "Applications/"

// ReleaseID derives the owning release from the entry id. Entry ids follow
// the layout "<root>/<folder>/<releaseShortName>/...", so the third segment
// names the release.
func (x *ActivityLogEntry) ReleaseID() (types.ReleaseID, error) {
	parts := strings.Split(x.ID, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", goerr.New("malformed activity log entry id", goerr.V("id", x.ID))
	}
	return types.ReleaseID(releaseIDPrefix + parts[2]), nil
}
