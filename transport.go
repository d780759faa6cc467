package pivotal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultBaseURL is the fixed base path of the tracker's v5 REST API.
const DefaultBaseURL = "https://www.pivotaltracker.com/services/v5/"

const trackerTokenHeader = "X-TrackerToken"

// Response is a raw transport result: status plus body, uninterpreted.
// Classifying it into a typed value or an error is the Client's job.
type Response struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPService is the transport capability set the Client dispatches
// through. Every method except Login attaches the configured token header;
// Login instead performs a basic-auth credential exchange against the
// current-user endpoint. Implementations must be swappable with a scripted
// double that returns pre-built responses without touching the network.
type HTTPService interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)

	// PostFile posts a single file as multipart form data under the form
	// field "file", carrying fileName in the content disposition.
	PostFile(ctx context.Context, path, fileName string, file io.Reader) (*Response, error)

	// Login exchanges credentials for the current user's account data,
	// which includes a fresh API token.
	Login(ctx context.Context, username, password string) (*Response, error)

	// SetToken replaces the token attached to subsequent requests.
	SetToken(token string)
}

// httpService is the network-backed HTTPService. One instance is owned by
// each Client, so sessions with different tokens coexist safely.
type httpService struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

func newHTTPService(client *http.Client, baseURL, token string, logger *slog.Logger) *httpService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &httpService{
		client:  client,
		baseURL: baseURL,
		token:   token,
		logger:  logger,
	}
}

func (s *httpService) SetToken(token string) {
	s.token = token
}

func (s *httpService) Get(ctx context.Context, path string) (*Response, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodGet, path, "", nil, s.tokenAuth)
}

func (s *httpService) Post(ctx context.Context, path string, body any) (*Response, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodPost, path, "application/json", payload, s.tokenAuth)
}

func (s *httpService) Put(ctx context.Context, path string, body any) (*Response, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodPut, path, "application/json", payload, s.tokenAuth)
}

func (s *httpService) Delete(ctx context.Context, path string) (*Response, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodDelete, path, "", nil, s.tokenAuth)
}

func (s *httpService) PostFile(ctx context.Context, path, fileName string, file io.Reader) (*Response, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file %q into form: %w", fileName, err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart form: %w", err)
	}

	return s.do(ctx, http.MethodPost, path, form.FormDataContentType(), &buf, s.tokenAuth)
}

func (s *httpService) Login(ctx context.Context, username, password string) (*Response, error) {
	return s.do(ctx, http.MethodGet, currentUserPath, "", nil, func(req *http.Request) {
		req.SetBasicAuth(username, password)
	})
}

func (s *httpService) checkToken() error {
	if s.token == "" {
		return ErrNotAuthorized
	}
	return nil
}

func (s *httpService) tokenAuth(req *http.Request) {
	req.Header.Set(trackerTokenHeader, s.token)
}

func (s *httpService) do(ctx context.Context, method, path, contentType string, body io.Reader, authorize func(*http.Request)) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	authorize(req)

	s.logger.Debug("dispatching tracker request", "method", method, "path", path)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s %s: %w", method, path, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(payload), nil
}
