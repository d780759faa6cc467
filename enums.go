package pivotal

import (
	"encoding/json"
	"fmt"
)

// StoryType classifies a story. The constant values are the exact strings
// the tracker uses on the wire.
type StoryType string

const (
	StoryTypeFeature StoryType = "feature"
	StoryTypeBug     StoryType = "bug"
	StoryTypeChore   StoryType = "chore"
	StoryTypeRelease StoryType = "release"
)

func (t StoryType) String() string { return string(t) }

// ParseStoryType maps a wire string onto a StoryType, rejecting anything
// the tracker vocabulary does not contain.
func ParseStoryType(s string) (StoryType, error) {
	switch t := StoryType(s); t {
	case StoryTypeFeature, StoryTypeBug, StoryTypeChore, StoryTypeRelease:
		return t, nil
	}
	return "", fmt.Errorf("pivotal: unknown story type %q", s)
}

func (t *StoryType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("story type: %w", err)
	}
	parsed, err := ParseStoryType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// StoryState is the scheduling state of a story.
type StoryState string

const (
	StoryStateAccepted    StoryState = "accepted"
	StoryStateDelivered   StoryState = "delivered"
	StoryStateFinished    StoryState = "finished"
	StoryStateStarted     StoryState = "started"
	StoryStateRejected    StoryState = "rejected"
	StoryStatePlanned     StoryState = "planned"
	StoryStateUnstarted   StoryState = "unstarted"
	StoryStateUnscheduled StoryState = "unscheduled"
)

func (s StoryState) String() string { return string(s) }

// ParseStoryState maps a wire string onto a StoryState, rejecting unknown
// values rather than defaulting.
func ParseStoryState(v string) (StoryState, error) {
	switch s := StoryState(v); s {
	case StoryStateAccepted, StoryStateDelivered, StoryStateFinished,
		StoryStateStarted, StoryStateRejected, StoryStatePlanned,
		StoryStateUnstarted, StoryStateUnscheduled:
		return s, nil
	}
	return "", fmt.Errorf("pivotal: unknown story state %q", v)
}

func (s *StoryState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("story state: %w", err)
	}
	parsed, err := ParseStoryState(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
