package pivotal

import (
	"fmt"
	"net/url"
)

// Relative resource paths, joined onto the service base URL by the
// transport. These are pure string builders; nothing here is validated
// client-side.

const currentUserPath = "me"

func projectsPath() string {
	return "projects"
}

func projectPath(projectID int) string {
	return fmt.Sprintf("projects/%d", projectID)
}

func storiesPath(projectID int) string {
	return fmt.Sprintf("projects/%d/stories", projectID)
}

func storyPath(projectID, storyID int) string {
	return fmt.Sprintf("projects/%d/stories/%d", projectID, storyID)
}

func storyTasksPath(projectID, storyID int) string {
	return fmt.Sprintf("projects/%d/stories/%d/tasks", projectID, storyID)
}

func storyTaskPath(projectID, storyID, taskID int) string {
	return fmt.Sprintf("projects/%d/stories/%d/tasks/%d", projectID, storyID, taskID)
}

func commentsPath(projectID, storyID int) string {
	return fmt.Sprintf("projects/%d/stories/%d/comments", projectID, storyID)
}

func commentPath(projectID, storyID, commentID int) string {
	return fmt.Sprintf("projects/%d/stories/%d/comments/%d", projectID, storyID, commentID)
}

func uploadsPath(projectID int) string {
	return fmt.Sprintf("projects/%d/uploads", projectID)
}

// searchPath builds the story search path for a query written in the
// tracker's search language, e.g. "state:unstarted" or "mywork:MB".
func searchPath(projectID int, query string) string {
	return fmt.Sprintf("projects/%d/search?query=%s", projectID, url.QueryEscape(query))
}

func myWorkQuery(initials string) string {
	return fmt.Sprintf("mywork:%s", initials)
}

func backlogQuery() string {
	return fmt.Sprintf("state:%s", StoryStateUnstarted)
}

func iceboxQuery() string {
	return fmt.Sprintf("state:%s", StoryStateUnscheduled)
}
