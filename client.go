package pivotal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
)

// Client is a tracker session. It owns the API token and an optional
// persisted project id, and dispatches every logical operation through its
// HTTPService.
//
// A Client is not designed for concurrent mutation: Authenticate replaces
// the stored token as a side effect, so callers must serialize it relative
// to other calls on the same instance. Independent read/write operations
// are safe to issue concurrently.
type Client struct {
	http      HTTPService
	token     string
	projectID *int
	logger    *slog.Logger
}

type clientOptions struct {
	httpClient *http.Client
	service    HTTPService
	baseURL    string
	projectID  *int
	logger     *slog.Logger
}

// Option configures a Client at construction time.
type Option func(*clientOptions)

// WithProjectID persists a project id on the client so project-scoped calls
// may omit it. A per-call explicit id always wins over the persisted one.
func WithProjectID(id int) Option {
	return func(o *clientOptions) { o.projectID = &id }
}

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithBaseURL overrides the service base URL, e.g. for an on-premise
// installation or a test server.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithLogger attaches a structured logger. Request dispatch is logged at
// debug level; a nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithHTTPService replaces the whole transport with a custom HTTPService.
// Intended for test doubles that script responses per call.
func WithHTTPService(s HTTPService) Option {
	return func(o *clientOptions) { o.service = s }
}

// NewClient returns a token-initialized session, immediately usable for all
// authenticated operations.
func NewClient(apiToken string, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	service := o.service
	if service == nil {
		service = newHTTPService(o.httpClient, o.baseURL, apiToken, logger)
	}
	return &Client{
		http:      service,
		token:     apiToken,
		projectID: o.projectID,
		logger:    logger,
	}
}

// NewUnauthenticatedClient returns a credential-deferred session. It cannot
// make authenticated calls until Authenticate succeeds.
func NewUnauthenticatedClient(opts ...Option) *Client {
	return NewClient("", opts...)
}

// Token returns the API token currently held by the session.
func (c *Client) Token() string { return c.token }

// ProjectID returns the persisted project id, or nil if none is set.
func (c *Client) ProjectID() *int { return c.projectID }

// SetProjectID replaces the persisted project id. Setting nil makes
// project-scoped calls fail unless an explicit id is passed.
func (c *Client) SetProjectID(projectID *int) {
	c.projectID = projectID
}

// ResolveProjectID returns the explicit id when one is given, otherwise the
// persisted id. It fails with ErrMissingProjectID before any request is
// built, so a missing id never produces a malformed call.
func (c *Client) ResolveProjectID(explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if c.projectID != nil {
		return *c.projectID, nil
	}
	return 0, ErrMissingProjectID
}

// Authenticate exchanges a username and password for the account's data via
// basic auth. When the response carries an API token the session adopts it,
// and every subsequent call authenticates with the new token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: username and password must not be blank", ErrInvalidArgument)
	}

	resp, err := c.http.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	user, err := decode[*User](resp)
	if err != nil {
		return nil, err
	}

	if user.APIToken != "" {
		c.token = user.APIToken
		c.http.SetToken(user.APIToken)
		c.logger.Debug("adopted api token from credential exchange", "user", user.Username)
	}
	return user, nil
}

// GetUser returns the account behind the current API token.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	resp, err := c.http.Get(ctx, currentUserPath)
	if err != nil {
		return nil, err
	}
	return decode[*User](resp)
}

// GetProjects returns every project the current user is a member of.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	resp, err := c.http.Get(ctx, projectsPath())
	if err != nil {
		return nil, err
	}
	return decode[[]Project](resp)
}

// GetProject returns a single project. A nil projectID falls back to the
// persisted id.
func (c *Client) GetProject(ctx context.Context, projectID *int) (*Project, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Get(ctx, projectPath(id))
	if err != nil {
		return nil, err
	}
	return decode[*Project](resp)
}

// GetProjectStories returns all stories in a project.
func (c *Client) GetProjectStories(ctx context.Context, projectID *int) ([]Story, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Get(ctx, storiesPath(id))
	if err != nil {
		return nil, err
	}
	return decode[[]Story](resp)
}

// GetStory returns one story by id.
func (c *Client) GetStory(ctx context.Context, projectID *int, storyID int) (*Story, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Get(ctx, storyPath(id, storyID))
	if err != nil {
		return nil, err
	}
	return decode[*Story](resp)
}

// DeleteStory removes a story. This is irreversible. It returns true only
// on a 2xx response; any other status surfaces as an *HTTPError, never as
// a false result.
func (c *Client) DeleteStory(ctx context.Context, projectID *int, storyID int) (bool, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Delete(ctx, storyPath(id, storyID))
	if err != nil {
		return false, err
	}
	return acknowledge(resp)
}

// CreateStory creates a story from discrete fields. Nil labels are sent as
// an empty list, never as null.
func (c *Client) CreateStory(ctx context.Context, projectID *int, name string, storyType StoryType, labels []string, description string) (*Story, error) {
	if labels == nil {
		labels = []string{}
	}
	return c.CreateStoryFromModel(ctx, projectID, NewStory{
		Name:        name,
		Description: description,
		StoryType:   storyType.String(),
		Labels:      labels,
	})
}

// CreateStoryFromModel posts a pre-built creation payload and returns the
// fully populated story, including its server-assigned id.
func (c *Client) CreateStoryFromModel(ctx context.Context, projectID *int, story NewStory) (*Story, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if story.Labels == nil {
		story.Labels = []string{}
	}
	resp, err := c.http.Post(ctx, storiesPath(id), story)
	if err != nil {
		return nil, err
	}
	return decode[*Story](resp)
}

// GetStoryTasks returns the ordered task list of a story.
func (c *Client) GetStoryTasks(ctx context.Context, projectID *int, storyID int) ([]Task, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Get(ctx, storyTasksPath(id, storyID))
	if err != nil {
		return nil, err
	}
	return decode[[]Task](resp)
}

// CreateStoryTask posts a pre-built task creation payload.
func (c *Client) CreateStoryTask(ctx context.Context, projectID *int, storyID int, task NewTask) (*Task, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(ctx, storyTasksPath(id, storyID), task)
	if err != nil {
		return nil, err
	}
	return decode[*Task](resp)
}

// AddStoryTask creates a task from discrete fields. A nil position is
// omitted from the payload so the tracker appends the task at the end of
// the list; the client never defaults it.
func (c *Client) AddStoryTask(ctx context.Context, projectID *int, storyID int, description string, complete bool, position *int) (*Task, error) {
	return c.CreateStoryTask(ctx, projectID, storyID, NewTask{
		Description: description,
		Complete:    complete,
		Position:    position,
	})
}

// UpdateStoryTask updates a task in place. The target is identified by the
// id carried on the passed-in task, so callers must supply a task they
// previously fetched or created.
func (c *Client) UpdateStoryTask(ctx context.Context, projectID *int, storyID int, task Task) (*Task, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Put(ctx, storyTaskPath(id, storyID, task.ID), task)
	if err != nil {
		return nil, err
	}
	return decode[*Task](resp)
}

// DeleteStoryTask removes a task. Returns true only on a 2xx response.
func (c *Client) DeleteStoryTask(ctx context.Context, projectID *int, storyID, taskID int) (bool, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Delete(ctx, storyTaskPath(id, storyID, taskID))
	if err != nil {
		return false, err
	}
	return acknowledge(resp)
}

// GetComments returns all comments on a story.
func (c *Client) GetComments(ctx context.Context, projectID *int, storyID int) ([]Comment, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Get(ctx, commentsPath(id, storyID))
	if err != nil {
		return nil, err
	}
	return decode[[]Comment](resp)
}

// CreateStoryComment adds a comment to a previously fetched story. The
// story is re-fetched first to confirm it still exists; a story the
// tracker no longer knows, whether reported as a 404 or as a null body,
// fails with ErrNotFound. Other re-fetch failures propagate unchanged.
func (c *Client) CreateStoryComment(ctx context.Context, story Story, text string) (*Comment, error) {
	fetched, err := c.GetStory(ctx, Int(story.ProjectID), story.ID)
	if err != nil {
		var httpErr *HTTPError
		gone := errors.Is(err, errNullBody) ||
			(errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound)
		if gone {
			return nil, fmt.Errorf("%w: story %d does not exist on project %d: %w", ErrNotFound, story.ID, story.ProjectID, err)
		}
		return nil, err
	}

	return c.CreateCommentFromModel(ctx, NewComment{
		ProjectID:       fetched.ProjectID,
		StoryID:         fetched.ID,
		Text:            text,
		FileAttachments: []Attachment{},
	})
}

// CreateCommentFromModel posts a pre-built comment payload. The payload
// must carry its own project and story ids.
func (c *Client) CreateCommentFromModel(ctx context.Context, comment NewComment) (*Comment, error) {
	if comment.FileAttachments == nil {
		comment.FileAttachments = []Attachment{}
	}
	resp, err := c.http.Post(ctx, commentsPath(comment.ProjectID, comment.StoryID), comment)
	if err != nil {
		return nil, err
	}
	return decode[*Comment](resp)
}

// CreateComment adds a plain-text comment to a story.
func (c *Client) CreateComment(ctx context.Context, projectID *int, storyID int, text string) (*Comment, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.CreateCommentFromModel(ctx, NewComment{
		ProjectID:       id,
		StoryID:         storyID,
		Text:            text,
		FileAttachments: []Attachment{},
	})
}

// CreateCommentWithFile adds a comment carrying one file attachment. The
// workflow is three steps: create the plain-text comment, upload the file
// to the project's uploads endpoint, then re-create the comment with the
// uploaded attachment listed. The tracker does not echo attachments back on
// comment creation, so the uploaded list is merged onto the returned
// comment client-side.
//
// If the upload fails, the plain-text comment from the first step is left
// in place and no second creation is attempted; callers needing atomicity
// must compensate themselves.
func (c *Client) CreateCommentWithFile(ctx context.Context, projectID *int, storyID int, text, fileName string, file io.Reader) (*Comment, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}

	plain, err := c.CreateComment(ctx, Int(id), storyID, text)
	if err != nil {
		return nil, err
	}

	uploadResp, err := c.http.PostFile(ctx, uploadsPath(id), fileName, file)
	if err != nil {
		return nil, err
	}
	uploaded, err := decode[Attachment](uploadResp)
	if err != nil {
		return nil, err
	}

	attachments := []Attachment{uploaded}
	final, err := c.CreateCommentFromModel(ctx, NewComment{
		ProjectID:       id,
		StoryID:         storyID,
		Text:            plain.Text,
		FileAttachments: attachments,
	})
	if err != nil {
		return nil, err
	}

	final.FileAttachments = attachments
	return final, nil
}

// UpdateComment rewrites an existing comment. The author id is not settable
// through the API, so it is cleared from the outgoing payload regardless of
// what the caller left on the comment.
func (c *Client) UpdateComment(ctx context.Context, projectID *int, storyID int, comment Comment) (*Comment, error) {
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	comment.PersonID = nil

	resp, err := c.http.Put(ctx, commentPath(id, storyID, comment.ID), comment)
	if err != nil {
		return nil, err
	}
	return decode[*Comment](resp)
}

// SearchStories runs a query written in the tracker's search language
// against a project, e.g. "state:started requester:MB".
func (c *Client) SearchStories(ctx context.Context, projectID *int, query string) (*StorySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query must not be blank", ErrInvalidArgument)
	}
	id, err := c.ResolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Get(ctx, searchPath(id, query))
	if err != nil {
		return nil, err
	}
	return decode[*StorySearchResult](resp)
}

// MyWorkStories returns the stories in "My Work" for the user with the
// given initials.
func (c *Client) MyWorkStories(ctx context.Context, projectID *int, initials string) (*StorySearchResult, error) {
	if strings.TrimSpace(initials) == "" {
		return nil, fmt.Errorf("%w: initials must not be blank", ErrInvalidArgument)
	}
	return c.SearchStories(ctx, projectID, myWorkQuery(initials))
}

// BacklogStories returns the project's backlog, i.e. unstarted stories.
func (c *Client) BacklogStories(ctx context.Context, projectID *int) (*StorySearchResult, error) {
	return c.SearchStories(ctx, projectID, backlogQuery())
}

// IceboxStories returns the project's icebox, i.e. unscheduled stories.
func (c *Client) IceboxStories(ctx context.Context, projectID *int) (*StorySearchResult, error) {
	return c.SearchStories(ctx, projectID, iceboxQuery())
}

// decode classifies a transport response: 2xx bodies deserialize into T,
// anything else becomes an *HTTPError carrying the raw body.
func decode[T any](resp *Response) (T, error) {
	var out T
	if !resp.Success() {
		return out, httpError(resp)
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("decode response body: %w", err)
	}
	// A 2xx body of the JSON literal null unmarshals into a nil pointer
	// without error. Surface it as a decode failure rather than handing a
	// nil result to callers.
	if v := reflect.ValueOf(out); v.Kind() == reflect.Pointer && v.IsNil() {
		return out, fmt.Errorf("decode response body: %w", errNullBody)
	}
	return out, nil
}

// acknowledge classifies a response for boolean-returning operations. An
// empty 2xx body is a successful empty result here; failure is always an
// error, never a false return.
func acknowledge(resp *Response) (bool, error) {
	if resp.Success() {
		return true, nil
	}
	return false, httpError(resp)
}

func httpError(resp *Response) *HTTPError {
	return &HTTPError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
}
