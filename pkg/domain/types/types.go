package types

// Version is overwritten at build time via -ldflags
var Version = "dev"

// ReleaseID is the identifier of a release, e.g. "Applications/Release42"
type ReleaseID string

func (x ReleaseID) String() string { return string(x) }

// TaskID is the identifier of a task inside a release
type TaskID string

func (x TaskID) String() string { return string(x) }

// ActivityType is the activity tag recorded on an activity log entry
type ActivityType string

const (
	ActivityTaskStarted      ActivityType = "TASK_STARTED"
	ActivityTaskOwnerUpdated ActivityType = "TASK_OWNER_UPDATED"
	ActivityTaskTeamUpdated  ActivityType = "TASK_TASK_TEAM_UPDATED"
	ActivityReleaseStarted   ActivityType = "RELEASE_STARTED"
	ActivityTaskCompleted    ActivityType = "TASK_COMPLETED"
	ActivityTaskCommentAdded ActivityType = "TASK_COMMENT_ADDED"
)

// Notifiable reports whether activities of this type are forwarded to the bot
func (x ActivityType) Notifiable() bool {
	switch x {
	case ActivityTaskStarted, ActivityTaskOwnerUpdated, ActivityTaskTeamUpdated:
		return true
	default:
		return false
	}
}

// DefaultBotURL is used when no configuration provides bot.url
const DefaultBotURL = "http://localhost:8080"
