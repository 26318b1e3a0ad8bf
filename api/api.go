// Package api talks to the dashboard's REST origin.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/tidwall/gjson"

	nt "dasbor/entity"
)

// Config is the configurable fields of Client.
type Config struct {
	BaseUrl  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Timezone string        `yaml:"timezone"`
}

// Client is an http client scoped to one origin.
type Client struct {
	baseUrl  string
	timezone string
	client   *http.Client
	logger   nt.Logger
}

// New creates a Client from Config.
func (cfg *Config) New(lgr nt.Logger) (clnt *Client, err error) {

	if cfg.BaseUrl == "" {
		err = errors.Errorf("base_url is required")
		return
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	clnt = &Client{
		baseUrl:  strings.TrimRight(cfg.BaseUrl, "/"),
		timezone: cfg.Timezone,
		client:   &http.Client{Timeout: timeout},
		logger:   lgr,
	}
	return
}

// List gets path and decodes the json response into out.
func (clnt *Client) List(ctx context.Context, path string, out any) (err error) {

	body, err := clnt.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return
	}

	err = json.Unmarshal(body, out)
	err = errors.Wrapf(err, "failed to unmarshal response from %s", path)
	return
}

// Post creates a resource from an encoded payload.
func (clnt *Client) Post(ctx context.Context, path string, pl nt.Payload) (err error) {

	_, err = clnt.do(ctx, http.MethodPost, path, &pl)
	return
}

// Put updates a resource from an encoded payload.
func (clnt *Client) Put(ctx context.Context, path string, pl nt.Payload) (err error) {

	_, err = clnt.do(ctx, http.MethodPut, path, &pl)
	return
}

// PutJSON updates a resource from a json encoded obj.
func (clnt *Client) PutJSON(ctx context.Context, path string, obj any) (err error) {

	data, err := json.Marshal(obj)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal request for %s", path)
		return
	}

	return clnt.Put(ctx, path, nt.Payload{Body: data, ContentType: "application/json"})
}

// Delete removes a resource.
func (clnt *Client) Delete(ctx context.Context, path string) (err error) {

	_, err = clnt.do(ctx, http.MethodDelete, path, nil)
	return
}

// StatusError is a non-2xx response.
type StatusError struct {
	Status  int
	Message string
}

func (err *StatusError) Error() string {

	if err.Message == "" {
		return fmt.Sprintf("unexpected status %d", err.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", err.Status, err.Message)
}

// Message returns the server's own message for err, if it sent one.
func Message(err error) (string, bool) {

	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

// unexported

func (clnt *Client) do(ctx context.Context, method, path string, pl *nt.Payload) (body []byte, err error) {

	url := clnt.baseUrl + path

	var rdr io.Reader
	if pl != nil {
		rdr = bytes.NewReader(pl.Body)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		err = errors.Wrapf(err, "failed to create request for %s %s", method, url)
		return
	}

	requestId := xid.New().String()
	request.Header.Set("X-Request-Id", requestId)
	if clnt.timezone != "" {
		request.Header.Set("x-timezone", clnt.timezone)
	}
	if pl != nil {
		request.Header.Set("Content-Type", pl.ContentType)
	}

	start := time.Now()
	response, err := clnt.client.Do(request)
	if err != nil {
		err = errors.Wrapf(err, "failed to send %s %s", method, url)
		clnt.logger.Error(ctx, "request failed", err, "request_id", requestId)
		return
	}
	defer response.Body.Close()

	body, err = io.ReadAll(response.Body)
	if err != nil {
		err = errors.Wrapf(err, "failed to read response from %s %s", method, url)
		return
	}

	clnt.logger.Info(ctx, "request completed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestId,
		"elapsed", time.Since(start),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		err = &StatusError{
			Status:  response.StatusCode,
			Message: errorMessage(body),
		}
	}
	return
}

func errorMessage(body []byte) string {

	if !gjson.ValidBytes(body) {
		return ""
	}

	result := gjson.GetManyBytes(body, "error", "message")
	for _, res := range result {
		if res.Type == gjson.String && res.Str != "" {
			return res.Str
		}
	}
	return ""
}
