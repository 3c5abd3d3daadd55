package bridge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExtensionBridge/internal/config"
	"github.com/GriffinCanCode/ExtensionBridge/internal/logging"
	"github.com/GriffinCanCode/ExtensionBridge/internal/transport"
)

const (
	dataPath     = "/api/extension/data/%s"
	responsePath = "/api/extension/response/%s"
)

// Bridge connects an extension process to its host IDE. It is safe for
// concurrent use; each Load returns an independent Session.
type Bridge struct {
	uuid   string
	client *transport.Client
	logger *logging.Logger
}

// Option customizes a Bridge.
type Option func(*Bridge)

// WithLogger replaces the default logger.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithClient replaces the default transport client. Used by tests to point
// the bridge at a fixture host.
func WithClient(client *transport.Client) Option {
	return func(b *Bridge) {
		b.client = client
	}
}

// New builds a Bridge from the process environment. It fails when
// EXTENSION_UUID, HOST, or PORT is missing, or PORT is not numeric.
func New(opts ...Option) (*Bridge, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	b := &Bridge{
		uuid:   cfg.Extension.UUID,
		client: transport.New(cfg.BaseURL()),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		logger, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			logger = logging.NewNop()
		}
		b.logger = logger
	}

	b.logger.Debug("bridge configured",
		zap.String("host", b.client.BaseURL()),
		zap.String("extension_uuid", b.uuid),
	)
	return b, nil
}

// Load fetches the session payload from the host and returns a Session
// snapshot of the editor state. Every call fetches fresh state; sessions do
// not share anything.
func (b *Bridge) Load(ctx context.Context) (*Session, error) {
	path := fmt.Sprintf(dataPath, b.uuid)

	resp, err := b.client.Get(ctx, path)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return nil, &TransportError{Op: "load", URL: b.client.BaseURL() + path, StatusCode: status, Err: err}
	}

	data, err := decodeSession(resp.Body())
	if err != nil {
		return nil, err
	}

	b.logger.Debug("session loaded",
		zap.String("request_id", data.RequestID),
		zap.String("repo_path", data.RepoPath),
		zap.Int("repo_files", len(data.Repo)),
	)

	return newSession(b, data), nil
}
