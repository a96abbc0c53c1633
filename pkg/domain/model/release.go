package model

import "github.com/m-mizutani/xlrbot/pkg/domain/types"

// Release is the subset of an XL Release release the bridge relies on
type Release struct {
	ID          types.ReleaseID `json:"id"`
	Title       string          `json:"title"`
	Status      string          `json:"status"`
	CurrentTask *Task           `json:"currentTask,omitempty"`
	Phases      []*Phase        `json:"phases,omitempty"`
}

// Phase groups tasks of a release
type Phase struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Status string  `json:"status"`
	Tasks  []*Task `json:"tasks,omitempty"`
}

// Task is a release task. Group tasks carry their children in Tasks.
type Task struct {
	ID     types.TaskID `json:"id"`
	Title  string       `json:"title"`
	Status string       `json:"status"`
	Tasks  []*Task      `json:"tasks,omitempty"`
}

var activeTaskStatuses = map[string]struct{}{
	"IN_PROGRESS":                 {},
	"FAILED":                      {},
	"FAILING":                     {},
	"WAITING_FOR_INPUT":           {},
	"PRECONDITION_IN_PROGRESS":    {},
	"FAILURE_HANDLER_IN_PROGRESS": {},
	"ABORT_SCRIPT_IN_PROGRESS":    {},
}

// IsActive reports whether the execution pointer can be on this task
func (x *Task) IsActive() bool {
	_, ok := activeTaskStatuses[x.Status]
	return ok
}

// ActiveTask returns the current task of the release, or nil if there is
// none. An explicit currentTask wins over walking the phases.
func (x *Release) ActiveTask() *Task {
	if x.CurrentTask != nil && x.CurrentTask.ID != "" {
		return x.CurrentTask
	}
	for _, phase := range x.Phases {
		if t := firstActive(phase.Tasks); t != nil {
			return t
		}
	}
	return nil
}

func firstActive(tasks []*Task) *Task {
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if len(t.Tasks) > 0 {
			if child := firstActive(t.Tasks); child != nil {
				return child
			}
		}
		if t.IsActive() && t.ID != "" {
			return t
		}
	}
	return nil
}
