//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/KasumiMercury/primind-jetlag/internal/observability/tracing"
)

// PrimindTasksClient talks to the local Cloud Tasks emulator.
type PrimindTasksClient struct {
	baseURL    string
	queueName  string
	targetURL  string
	httpClient *http.Client
	maxRetries int
}

// emulatorTaskRequest is the Cloud Tasks REST shape the emulator accepts.
type emulatorTaskRequest struct {
	Task emulatorTask `json:"task"`
}

type emulatorTask struct {
	Name         string              `json:"name,omitempty"`
	HTTPRequest  emulatorHTTPRequest `json:"httpRequest"`
	ScheduleTime string              `json:"scheduleTime,omitempty"`
}

type emulatorHTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type emulatorTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

func NewPrimindTasksClient(baseURL, queueName, targetURL string, maxRetries int) *PrimindTasksClient {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &PrimindTasksClient{
		baseURL:   baseURL,
		queueName: queueName,
		targetURL: targetURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *PrimindTasksClient) queueURL() string {
	if c.queueName != "" && c.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *PrimindTasksClient) RegisterDispatch(ctx context.Context, task *DispatchTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dispatch task: %w", err)
	}

	primindReq := emulatorTaskRequest{
		Task: emulatorTask{
			Name: task.TaskID,
			HTTPRequest: emulatorHTTPRequest{
				URL:  c.targetURL,
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
					"message_type": "dispatch",
				},
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		primindReq.Task.ScheduleTime = task.ScheduleAt.UTC().Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(primindReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	var resp *TaskResponse
	err = withRetry(ctx, c.maxRetries, task.TaskID, func() error {
		var reqErr error
		resp, reqErr = c.doRegister(ctx, reqBody, task)
		return reqErr
	})
	if err != nil {
		slog.ErrorContext(ctx, "all retries exhausted for task registration",
			slog.String("task_id", task.TaskID),
			slog.String("schedule_id", task.ScheduleID),
			slog.Int("max_retries", c.maxRetries),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to register task after %d retries: %w", c.maxRetries, err)
	}

	return resp, nil
}

func (c *PrimindTasksClient) doRegister(ctx context.Context, reqBody []byte, task *DispatchTask) (*TaskResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queueURL(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to Primind Tasks",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		slog.InfoContext(ctx, "dispatch task already registered",
			slog.String("task_id", task.TaskID),
		)
		return &TaskResponse{Name: task.TaskID, ScheduleTime: task.ScheduleAt}, nil
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.String("task_id", task.TaskID),
			slog.Int("status_code", resp.StatusCode),
		)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var primindResp emulatorTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, primindResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	slog.InfoContext(ctx, "dispatch task registered to Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.String("schedule_id", task.ScheduleID),
		slog.Time("schedule_time", scheduleTime),
	)

	return &TaskResponse{
		Name:         primindResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *PrimindTasksClient) DeleteTask(ctx context.Context, taskID string) error {
	url := c.queueURL() + "/" + taskID

	err := withRetry(ctx, c.maxRetries, taskID, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		tracing.InjectToHTTPRequest(ctx, req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			slog.InfoContext(ctx, "task not found in Primind Tasks (may have been processed)",
				slog.String("task_id", taskID),
			)
			return nil
		case resp.StatusCode >= 300:
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete task after %d retries: %w", c.maxRetries, err)
	}

	slog.InfoContext(ctx, "task deleted from Primind Tasks",
		slog.String("task_id", taskID),
	)
	return nil
}
