package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Overview summarizes the broker's state as reported by /api/overview.
type Overview struct {
	Version       string
	ErlangVersion string
	Connections   int64
	Queues        int64
	Exchanges     int64
}

// Queue is one entry of the /api/queues listing.
type Queue struct {
	Name     string
	Messages int64
}

// ClientConfig configures the management API client.
type ClientConfig struct {
	// Host is the management interface host.
	// Default: "localhost"
	Host string

	// Port is the management interface port.
	// Default: 15672
	Port int

	// Username and Password are the basic auth credentials.
	Username string
	Password string

	// Timeout is the per-request timeout.
	// Default: 5 seconds
	Timeout time.Duration
}

// Client talks to the RabbitMQ management HTTP API.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: non-200 responses are returned as *StatusError.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// NewClient creates a new management API client.
func NewClient(config ClientConfig) *Client {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 15672
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	return &Client{
		baseURL:  fmt.Sprintf("http://%s:%d", config.Host, config.Port),
		username: config.Username,
		password: config.Password,
		client:   &http.Client{Timeout: config.Timeout},
	}
}

// overviewPayload mirrors the fields of /api/overview the check consumes.
type overviewPayload struct {
	RabbitMQVersion string `json:"rabbitmq_version"`
	ErlangVersion   string `json:"erlang_version"`
	ObjectTotals    struct {
		Connections int64 `json:"connections"`
		Queues      int64 `json:"queues"`
		Exchanges   int64 `json:"exchanges"`
	} `json:"object_totals"`
}

// queuePayload mirrors the fields of /api/queues the check consumes.
type queuePayload struct {
	Name     string `json:"name"`
	Messages int64  `json:"messages"`
}

// Overview fetches the broker overview.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	var payload overviewPayload
	if err := c.get(ctx, "/api/overview", &payload); err != nil {
		return Overview{}, err
	}

	return Overview{
		Version:       payload.RabbitMQVersion,
		ErlangVersion: payload.ErlangVersion,
		Connections:   payload.ObjectTotals.Connections,
		Queues:        payload.ObjectTotals.Queues,
		Exchanges:     payload.ObjectTotals.Exchanges,
	}, nil
}

// ListQueues fetches the queue listing in the order the broker returns it.
func (c *Client) ListQueues(ctx context.Context) ([]Queue, error) {
	var payload []queuePayload
	if err := c.get(ctx, "/api/queues", &payload); err != nil {
		return nil, err
	}

	queues := make([]Queue, 0, len(payload))
	for _, q := range payload {
		queues = append(queues, Queue{Name: q.Name, Messages: q.Messages})
	}
	return queues, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("broker: build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("broker: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("broker: decode %s: %w", path, err)
	}
	return nil
}
