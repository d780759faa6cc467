package pivotal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryRoundTripsThroughJSON(t *testing.T) {
	deadline := time.Date(2017, 6, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2017, 5, 1, 9, 30, 0, 0, time.UTC)

	original := Story{
		ID:            1234,
		ProjectID:     42,
		Kind:          "story",
		Name:          "Ship the importer",
		Description:   "All optional fields populated",
		StoryType:     StoryTypeFeature,
		StoryState:    StoryStateStarted,
		Estimate:      3,
		Deadline:      &deadline,
		RequestedByID: 27,
		OwnerIDs:      []int{27, 31},
		Labels: []Label{
			{ID: Int(7), ProjectID: Int(42), Name: "importer"},
		},
		CreatedAt: &created,
		UpdatedAt: &created,
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"story_type":"feature"`)
	assert.Contains(t, string(raw), `"requested_by_id":27`)

	var decoded Story
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestStoryTypeRejectsUnknownWireValue(t *testing.T) {
	var story Story
	err := json.Unmarshal([]byte(`{"id":1,"story_type":"epic"}`), &story)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown story type")

	_, err = ParseStoryType("feature")
	require.NoError(t, err)
}

func TestStoryStateRejectsUnknownWireValue(t *testing.T) {
	var story Story
	err := json.Unmarshal([]byte(`{"id":1,"story_state":"parked"}`), &story)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown story state")

	for _, state := range []string{
		"accepted", "delivered", "finished", "started",
		"rejected", "planned", "unstarted", "unscheduled",
	} {
		_, err := ParseStoryState(state)
		require.NoError(t, err, "state %q", state)
	}
}

func TestNewTaskOmitsNilPosition(t *testing.T) {
	raw, err := json.Marshal(NewTask{Description: "do it"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "position")
	assert.Contains(t, string(raw), `"complete":false`)

	raw, err = json.Marshal(NewTask{Description: "do it first", Position: Int(1)})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"position":1`)
}

func TestNewStoryLabelsMarshalling(t *testing.T) {
	// A nil slice would serialize as null; the client entry points
	// normalize it to an empty slice before posting.
	raw, err := json.Marshal(NewStory{Name: "n", Labels: nil})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"labels":null`)

	raw, err = json.Marshal(NewStory{Name: "n", Labels: []string{}})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"labels":[]`)
}

func TestCommentCarriesAttachmentAndAuthorFields(t *testing.T) {
	payload := `{
		"id": 301,
		"project_id": 42,
		"story_id": 1234,
		"text": "see attached",
		"person_id": 27,
		"file_attachment_ids": [77],
		"file_attachments": [{"id": 77, "file_name": "doge.png", "uploader_id": 27}]
	}`

	var comment Comment
	require.NoError(t, json.Unmarshal([]byte(payload), &comment))

	assert.Equal(t, 301, comment.ID)
	assert.Equal(t, 42, comment.ProjectID)
	assert.Equal(t, 1234, comment.StoryID)
	require.NotNil(t, comment.PersonID)
	assert.Equal(t, 27, *comment.PersonID)
	assert.Equal(t, []int{77}, comment.FileAttachmentIDs)
	require.Len(t, comment.FileAttachments, 1)
	assert.Equal(t, "doge.png", comment.FileAttachments[0].FileName)
}

func TestUserDecodesMembershipSummaries(t *testing.T) {
	payload := `{
		"id": 27,
		"name": "Test User",
		"username": "testuser",
		"email": "test@test.com",
		"initials": "TU",
		"api_token": "tok",
		"projects": [
			{"project_id": 42, "project_name": "Importer", "project_color": "b800bb", "role": "owner"}
		]
	}`

	var user User
	require.NoError(t, json.Unmarshal([]byte(payload), &user))
	assert.Equal(t, "TU", user.Initials)
	require.Len(t, user.Projects, 1)
	assert.Equal(t, 42, user.Projects[0].ProjectID)
	assert.Equal(t, "owner", user.Projects[0].Role)
}
