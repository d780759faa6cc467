package pivotal

import "time"

// Int returns a pointer to v. Convenience for the optional-int fields and
// parameters used throughout the client.
func Int(v int) *int { return &v }

// Project is a tracker project the current user is a member of.
type Project struct {
	ID        int        `json:"id,omitempty"`
	Kind      string     `json:"kind,omitempty"`
	Name      string     `json:"name,omitempty"`
	Public    bool       `json:"public"`
	Color     string     `json:"color,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Label is a story label. Only the name is required when labelling a new
// story; the tracker resolves or creates the rest.
type Label struct {
	ID        *int       `json:"id,omitempty"`
	ProjectID *int       `json:"project_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Kind      string     `json:"kind,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Story is a unit of work within a project. The id is assigned by the
// tracker; a Story the client has not created yet is expressed as a
// NewStory instead.
type Story struct {
	ID            int        `json:"id,omitempty"`
	ProjectID     int        `json:"project_id,omitempty"`
	Kind          string     `json:"kind,omitempty"`
	Name          string     `json:"name,omitempty"`
	Description   string     `json:"description,omitempty"`
	StoryType     StoryType  `json:"story_type,omitempty"`
	StoryState    StoryState `json:"story_state,omitempty"`
	Estimate      float64    `json:"estimate,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	RequestedByID int        `json:"requested_by_id,omitempty"`
	OwnerIDs      []int      `json:"owner_ids,omitempty"`
	Labels        []Label    `json:"labels,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// NewStory is the creation payload for a story. Labels are referenced by
// name only and must marshal as an empty list rather than null when none
// are given.
type NewStory struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	StoryType   string   `json:"story_type,omitempty"`
	Labels      []string `json:"labels"`
}

// Task is an ordered checklist item on a story. Positions start at 1 for
// the first task.
type Task struct {
	ID          int        `json:"id,omitempty"`
	StoryID     int        `json:"story_id,omitempty"`
	Kind        string     `json:"kind,omitempty"`
	Description string     `json:"description,omitempty"`
	Complete    bool       `json:"complete"`
	Position    int        `json:"position,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewTask is the creation payload for a task. A nil Position is omitted
// from the wire so the tracker appends the task at the end of the list.
type NewTask struct {
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
	Position    *int   `json:"position,omitempty"`
}

// Attachment is an uploaded file. Attachments only ever come back from the
// uploads endpoint; the client never fabricates one with a meaningful id.
type Attachment struct {
	ID         int        `json:"id,omitempty"`
	Kind       string     `json:"kind,omitempty"`
	FileName   string     `json:"file_name,omitempty"`
	UploaderID int        `json:"uploader_id,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// NewComment is the creation payload for a comment. ProjectID and StoryID
// must both be resolved before it is posted.
type NewComment struct {
	ID              int          `json:"id,omitempty"`
	ProjectID       int          `json:"project_id"`
	StoryID         int          `json:"story_id"`
	Text            string       `json:"text,omitempty"`
	FileAttachments []Attachment `json:"file_attachments"`
}

// Comment is a text note on a story, optionally carrying one file
// attachment.
type Comment struct {
	NewComment

	FileAttachmentIDs []int      `json:"file_attachment_ids,omitempty"`
	PersonID          *int       `json:"person_id,omitempty"`
	Kind              string     `json:"kind,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// MembershipSummary is one project-membership entry on a User.
type MembershipSummary struct {
	ProjectID    int    `json:"project_id,omitempty"`
	ProjectName  string `json:"project_name,omitempty"`
	ProjectColor string `json:"project_color,omitempty"`
	Role         string `json:"role,omitempty"`
	Kind         string `json:"kind,omitempty"`
}

// User is the account behind an API token. APIToken is only populated on
// the response to a credential exchange.
type User struct {
	ID       int                 `json:"id,omitempty"`
	Kind     string              `json:"kind,omitempty"`
	Name     string              `json:"name,omitempty"`
	Username string              `json:"username,omitempty"`
	Email    string              `json:"email,omitempty"`
	Initials string              `json:"initials,omitempty"`
	APIToken string              `json:"api_token,omitempty"`
	Projects []MembershipSummary `json:"projects,omitempty"`
}

// StorySearchResult is the payload returned by the project search endpoint.
type StorySearchResult struct {
	Stories              []Story `json:"stories"`
	TotalHits            int     `json:"total_hits"`
	TotalHitsWithDone    int     `json:"total_hits_with_done"`
	TotalPoints          int     `json:"total_points"`
	TotalPointsCompleted int     `json:"total_points_completed"`
}
