package client

import (
	"context"
	"net/url"
	"time"
)

// SessionClient drives the booking wizard over the HTTP API.
type SessionClient struct {
	httpClient *HttpClient
}

func NewSessionClient(baseUrl string) *SessionClient {
	return &SessionClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// WaitForHealthy polls the service's /health endpoint until it answers 200
// or maxWait elapses.
func (c *SessionClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(ctx, maxWait)
}

func (c *SessionClient) Doctors(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/doctors")
}

func (c *SessionClient) Services(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/services")
}

func (c *SessionClient) Create(ctx context.Context) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/sessions", nil)
}

func (c *SessionClient) Get(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, sessionPath(id))
}

func (c *SessionClient) SelectDoctor(ctx context.Context, id, doctorID string) (*Response, error) {
	return c.httpClient.POST(ctx, sessionPath(id)+"/doctor", map[string]string{"doctor_id": doctorID})
}

func (c *SessionClient) GoBack(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.POST(ctx, sessionPath(id)+"/back", nil)
}

func (c *SessionClient) SubmitAppointment(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.POST(ctx, sessionPath(id)+"/appointment", body)
}

func (c *SessionClient) Confirmation(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, sessionPath(id)+"/confirmation")
}

func (c *SessionClient) Reset(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.POST(ctx, sessionPath(id)+"/reset", nil)
}

func (c *SessionClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, sessionPath(id))
}

func sessionPath(id string) string {
	return "/api/v1/sessions/id/" + url.PathEscape(id)
}
