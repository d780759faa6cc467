package pivotal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
)

func TestHTTPServiceAttachesTokenAndBaseURL(t *testing.T) {
	var (
		gotURL    string
		gotToken  string
		gotAccept string
	)

	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			gotToken = req.Header.Get("X-TrackerToken")
			gotAccept = req.Header.Get("Accept")
			return jsonResponse(http.StatusOK, `{"id":1}`), nil
		}),
	}

	svc := newHTTPService(client, "", "token-abc", nil)
	resp, err := svc.Get(context.Background(), "projects/5/stories")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if gotURL != DefaultBaseURL+"projects/5/stories" {
		t.Fatalf("request url = %q, want base url joined with path", gotURL)
	}
	if gotToken != "token-abc" {
		t.Fatalf("token header = %q, want token-abc", gotToken)
	}
	if gotAccept != "application/json" {
		t.Fatalf("accept header = %q, want application/json", gotAccept)
	}
	if !resp.Success() {
		t.Fatalf("response status = %d, want 2xx", resp.StatusCode)
	}
}

func TestHTTPServiceRefusesCallsWithoutToken(t *testing.T) {
	calls := 0
	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `{}`), nil
		}),
	}

	svc := newHTTPService(client, "", "", nil)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "me"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Get error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.Post(ctx, "projects", nil); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Post error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.Put(ctx, "projects", nil); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Put error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.Delete(ctx, "projects/1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Delete error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.PostFile(ctx, "projects/1/uploads", "a.png", strings.NewReader("x")); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("PostFile error = %v, want ErrNotAuthorized", err)
	}
	if calls != 0 {
		t.Fatalf("network calls = %d, want 0", calls)
	}
}

func TestHTTPServiceLoginUsesBasicAuth(t *testing.T) {
	var (
		gotUser  string
		gotPass  string
		gotOK    bool
		gotPath  string
		gotToken string
	)

	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			gotUser, gotPass, gotOK = req.BasicAuth()
			gotPath = req.URL.Path
			gotToken = req.Header.Get("X-TrackerToken")
			return jsonResponse(http.StatusOK, `{"username":"mb","api_token":"fresh"}`), nil
		}),
	}

	// Login must work on a session with no token yet.
	svc := newHTTPService(client, "", "", nil)
	resp, err := svc.Login(context.Background(), "mb", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !gotOK || gotUser != "mb" || gotPass != "secret" {
		t.Fatalf("basic auth = (%q, %q, %v), want (mb, secret, true)", gotUser, gotPass, gotOK)
	}
	if !strings.HasSuffix(gotPath, "/me") {
		t.Fatalf("login path = %q, want current-user endpoint", gotPath)
	}
	if gotToken != "" {
		t.Fatalf("token header = %q, want empty on credential exchange", gotToken)
	}
	if !resp.Success() {
		t.Fatalf("response status = %d, want 2xx", resp.StatusCode)
	}
}

func TestHTTPServicePostMarshalsJSONBody(t *testing.T) {
	var (
		gotContentType string
		gotBody        map[string]any
	)

	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			gotContentType = req.Header.Get("Content-Type")
			defer req.Body.Close()
			_ = json.NewDecoder(req.Body).Decode(&gotBody)
			return jsonResponse(http.StatusOK, `{}`), nil
		}),
	}

	svc := newHTTPService(client, "", "tok", nil)
	payload := NewStory{Name: "A story", StoryType: "feature", Labels: []string{}}
	if _, err := svc.Post(context.Background(), "projects/1/stories", payload); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}

	if gotContentType != "application/json" {
		t.Fatalf("content type = %q, want application/json", gotContentType)
	}
	if gotBody["name"] != "A story" || gotBody["story_type"] != "feature" {
		t.Fatalf("posted body = %v, want snake_case story fields", gotBody)
	}
}

func TestHTTPServicePostFileBuildsMultipartForm(t *testing.T) {
	var (
		gotContentType string
		gotFileName    string
		gotField       string
		gotContent     []byte
	)

	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			gotContentType = req.Header.Get("Content-Type")
			_, params, err := mime.ParseMediaType(gotContentType)
			if err != nil {
				t.Fatalf("parse content type: %v", err)
			}
			reader := multipart.NewReader(req.Body, params["boundary"])
			part, err := reader.NextPart()
			if err != nil {
				t.Fatalf("read multipart part: %v", err)
			}
			gotField = part.FormName()
			gotFileName = part.FileName()
			gotContent, _ = io.ReadAll(part)
			return jsonResponse(http.StatusOK, `{"id":9,"file_name":"doge.png"}`), nil
		}),
	}

	svc := newHTTPService(client, "", "tok", nil)
	resp, err := svc.PostFile(context.Background(), "projects/1/uploads", "doge.png", strings.NewReader("picture-bytes"))
	if err != nil {
		t.Fatalf("PostFile returned error: %v", err)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Fatalf("content type = %q, want multipart/form-data", gotContentType)
	}
	if gotField != "file" {
		t.Fatalf("form field = %q, want file", gotField)
	}
	if gotFileName != "doge.png" {
		t.Fatalf("form file name = %q, want doge.png", gotFileName)
	}
	if string(gotContent) != "picture-bytes" {
		t.Fatalf("form content = %q, want picture-bytes", gotContent)
	}
	if !resp.Success() {
		t.Fatalf("response status = %d, want 2xx", resp.StatusCode)
	}
}

func TestHTTPServiceReturnsNonSuccessUninterpreted(t *testing.T) {
	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnprocessableEntity, `{"error":"name is required"}`), nil
		}),
	}

	svc := newHTTPService(client, "", "tok", nil)
	resp, err := svc.Get(context.Background(), "projects/1")
	if err != nil {
		t.Fatalf("Get returned error: %v, transport must not classify statuses", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 passed through", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "name is required") {
		t.Fatalf("body = %q, want raw error body", resp.Body)
	}
}

func TestHTTPServiceSetTokenAffectsSubsequentCalls(t *testing.T) {
	var gotTokens []string
	client := &http.Client{
		Transport: fakeRoundTripper(func(req *http.Request) (*http.Response, error) {
			gotTokens = append(gotTokens, req.Header.Get("X-TrackerToken"))
			return jsonResponse(http.StatusOK, `{}`), nil
		}),
	}

	svc := newHTTPService(client, "", "old", nil)
	ctx := context.Background()
	if _, err := svc.Get(ctx, "me"); err != nil {
		t.Fatal(err)
	}
	svc.SetToken("new")
	if _, err := svc.Get(ctx, "me"); err != nil {
		t.Fatal(err)
	}

	if len(gotTokens) != 2 || gotTokens[0] != "old" || gotTokens[1] != "new" {
		t.Fatalf("token headers = %v, want [old new]", gotTokens)
	}
}

type fakeRoundTripper func(req *http.Request) (*http.Response, error)

func (f fakeRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}
