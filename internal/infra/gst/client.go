package gst

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	URL     string
	APIKey  string
	APIHost string
	Timeout time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.Named("gst"),
	}
}

type verifyRequest struct {
	TaskID  string            `json:"task_id"`
	GroupID string            `json:"group_id"`
	Data    map[string]string `json:"data"`
}

// Verify はクリーニング済みのGSTINを外部APIで照会する
func (c *Client) Verify(ctx context.Context, gstin string) (model.GSTDetails, error) {
	payload, err := json.Marshal(verifyRequest{
		TaskID:  uuid.NewString(),
		GroupID: uuid.NewString(),
		Data:    map[string]string{"gstin": gstin},
	})
	if err != nil {
		return model.GSTDetails{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return model.GSTDetails{}, fmt.Errorf("build gst request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.APIHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.GSTDetails{}, fmt.Errorf("call gst api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.GSTDetails{}, fmt.Errorf("read gst response: %w", err)
	}

	c.log.Debug("gst api response", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamMessage(body)
		if msg == "" {
			msg = "Invalid GST number"
		}
		return model.GSTDetails{}, &model.GSTVerifyError{Message: msg}
	}

	details, ok, err := Parse(body, gstin)
	if err != nil {
		return model.GSTDetails{}, err
	}
	if !ok {
		return model.GSTDetails{}, &model.GSTVerifyError{Message: "No recognizable business profile data found"}
	}
	return details, nil
}
