package pivotal

import "testing"

func TestResourcePaths(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"projects", projectsPath(), "projects"},
		{"project", projectPath(99), "projects/99"},
		{"stories", storiesPath(1), "projects/1/stories"},
		{"story", storyPath(1, 2), "projects/1/stories/2"},
		{"tasks", storyTasksPath(1, 2), "projects/1/stories/2/tasks"},
		{"task", storyTaskPath(1, 2, 3), "projects/1/stories/2/tasks/3"},
		{"comments", commentsPath(1, 2), "projects/1/stories/2/comments"},
		{"comment", commentPath(1, 2, 3), "projects/1/stories/2/comments/3"},
		{"uploads", uploadsPath(1), "projects/1/uploads"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("path = %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestSearchPathEncodesQuery(t *testing.T) {
	if got, want := searchPath(1, "mywork:MB"), "projects/1/search?query=mywork%3AMB"; got != want {
		t.Fatalf("search path = %q, want %q", got, want)
	}
	if got, want := searchPath(1, "state:started label:next up"), "projects/1/search?query=state%3Astarted+label%3Anext+up"; got != want {
		t.Fatalf("search path = %q, want %q", got, want)
	}
}

func TestPredefinedQueries(t *testing.T) {
	if got := backlogQuery(); got != "state:unstarted" {
		t.Fatalf("backlog query = %q, want state:unstarted", got)
	}
	if got := iceboxQuery(); got != "state:unscheduled" {
		t.Fatalf("icebox query = %q, want state:unscheduled", got)
	}
	if got := myWorkQuery("MB"); got != "mywork:MB" {
		t.Fatalf("mywork query = %q, want mywork:MB", got)
	}
}
