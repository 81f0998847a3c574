// Package client talks to a running studyplan server. Client implements planner.Planner,
// so the CLI works the same against a local database or a remote server.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/planner"
	"github.com/at-ishikawa/studyplan/internal/server"
	"github.com/at-ishikawa/studyplan/internal/statistics"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response of the server.
// It matches the sentinel errors of the engines so callers can keep using errors.Is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return target == validation.ErrValidation
	case http.StatusNotFound:
		return (target == mastery.ErrTopicNotFound || target == allocation.ErrTaskNotFound) &&
			strings.Contains(e.Message, target.Error())
	}
	return false
}

type Client struct {
	http *resty.Client
}

var _ planner.Planner = (*Client)(nil)

// New returns a client for the server at baseURL, for example "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")+server.APIPrefix).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
	}
}

type request struct {
	method     string
	path       string
	pathParams map[string]string
	query      map[string]string
	body       interface{}
	result     interface{}
}

func (c *Client) do(ctx context.Context, ownerID string, req request) error {
	r := c.http.R().
		SetContext(ctx).
		SetHeader(server.OwnerIDHeader, ownerID).
		SetError(&server.ErrorResponse{})
	if req.pathParams != nil {
		r.SetPathParams(req.pathParams)
	}
	if req.query != nil {
		r.SetQueryParams(req.query)
	}
	if req.body != nil {
		r.SetBody(req.body)
	}
	if req.result != nil {
		r.SetResult(req.result)
	}

	res, err := r.Execute(req.method, req.path)
	if err != nil {
		return fmt.Errorf("client.R().Execute(%s %s) > %w", req.method, req.path, err)
	}
	if res.IsError() {
		message := strings.TrimSpace(string(res.Body()))
		if body, ok := res.Error().(*server.ErrorResponse); ok && body.Error != "" {
			message = body.Error
		}
		return &APIError{StatusCode: res.StatusCode(), Message: message}
	}
	return nil
}

func idParam(id string) map[string]string {
	return map[string]string{"id": id}
}

func (c *Client) ListSubjects(ctx context.Context, ownerID string) ([]mastery.Subject, error) {
	var subjects []mastery.Subject
	err := c.do(ctx, ownerID, request{method: http.MethodGet, path: "/subjects", result: &subjects})
	return subjects, err
}

func (c *Client) ImportSubjects(ctx context.Context, ownerID string, subjects []mastery.Subject) ([]mastery.Subject, error) {
	var imported []mastery.Subject
	err := c.do(ctx, ownerID, request{
		method: http.MethodPost,
		path:   "/subjects/import",
		body:   server.ImportSubjectsRequest{Subjects: subjects},
		result: &imported,
	})
	return imported, err
}

func (c *Client) AddTopic(ctx context.Context, ownerID string, input planner.TopicInput) (mastery.Topic, error) {
	var topic mastery.Topic
	err := c.do(ctx, ownerID, request{method: http.MethodPost, path: "/topics", body: input, result: &topic})
	return topic, err
}

func (c *Client) ListTopics(ctx context.Context, ownerID string, status mastery.Status) ([]mastery.Topic, error) {
	var topics []mastery.Topic
	req := request{method: http.MethodGet, path: "/topics", result: &topics}
	if status != "" {
		req.query = map[string]string{"status": status.String()}
	}
	err := c.do(ctx, ownerID, req)
	return topics, err
}

func (c *Client) SetTopicStatus(ctx context.Context, ownerID, topicID string, status mastery.Status) (mastery.Topic, error) {
	var topic mastery.Topic
	err := c.do(ctx, ownerID, request{
		method:     http.MethodPut,
		path:       "/topics/{id}/status",
		pathParams: idParam(topicID),
		body:       server.SetStatusRequest{Status: status},
		result:     &topic,
	})
	return topic, err
}

func (c *Client) CompleteReview(ctx context.Context, ownerID, topicID string) (mastery.Topic, error) {
	var topic mastery.Topic
	err := c.do(ctx, ownerID, request{
		method:     http.MethodPost,
		path:       "/topics/{id}/review",
		pathParams: idParam(topicID),
		result:     &topic,
	})
	return topic, err
}

func (c *Client) RecordQuestions(ctx context.Context, ownerID, topicID string, total, correct int) (mastery.Topic, error) {
	var topic mastery.Topic
	err := c.do(ctx, ownerID, request{
		method:     http.MethodPost,
		path:       "/topics/{id}/questions",
		pathParams: idParam(topicID),
		body:       server.RecordQuestionsRequest{Total: total, Correct: correct},
		result:     &topic,
	})
	return topic, err
}

func (c *Client) DueTopics(ctx context.Context, ownerID string) ([]mastery.Topic, error) {
	var topics []mastery.Topic
	err := c.do(ctx, ownerID, request{method: http.MethodGet, path: "/due", result: &topics})
	return topics, err
}

func (c *Client) ListTasks(ctx context.Context, ownerID string) ([]allocation.Task, error) {
	var tasks []allocation.Task
	err := c.do(ctx, ownerID, request{method: http.MethodGet, path: "/tasks", result: &tasks})
	return tasks, err
}

func (c *Client) CreateTask(ctx context.Context, ownerID string, input planner.TaskInput) (allocation.Task, error) {
	var task allocation.Task
	err := c.do(ctx, ownerID, request{method: http.MethodPost, path: "/tasks", body: input, result: &task})
	return task, err
}

func (c *Client) RelocateTask(ctx context.Context, ownerID, taskID string, date calendar.Date, start calendar.ClockTime) (allocation.Task, error) {
	var task allocation.Task
	err := c.do(ctx, ownerID, request{
		method:     http.MethodPut,
		path:       "/tasks/{id}/schedule",
		pathParams: idParam(taskID),
		body:       server.RelocateRequest{Date: &date, StartTime: &start},
		result:     &task,
	})
	return task, err
}

func (c *Client) UnscheduleTask(ctx context.Context, ownerID, taskID string) (allocation.Task, error) {
	var task allocation.Task
	err := c.do(ctx, ownerID, request{
		method:     http.MethodDelete,
		path:       "/tasks/{id}/schedule",
		pathParams: idParam(taskID),
		result:     &task,
	})
	return task, err
}

func (c *Client) CompleteTask(ctx context.Context, ownerID, taskID string, completed bool) (allocation.Task, error) {
	var task allocation.Task
	err := c.do(ctx, ownerID, request{
		method:     http.MethodPut,
		path:       "/tasks/{id}/completed",
		pathParams: idParam(taskID),
		body:       server.CompleteRequest{Completed: completed},
		result:     &task,
	})
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return c.do(ctx, ownerID, request{
		method:     http.MethodDelete,
		path:       "/tasks/{id}",
		pathParams: idParam(taskID),
	})
}

func (c *Client) TaskBuckets(ctx context.Context, ownerID, taskID string) ([]allocation.BucketFill, error) {
	var fills []allocation.BucketFill
	err := c.do(ctx, ownerID, request{
		method:     http.MethodGet,
		path:       "/tasks/{id}/buckets",
		pathParams: idParam(taskID),
		result:     &fills,
	})
	return fills, err
}

func (c *Client) DayGrid(ctx context.Context, ownerID string, date calendar.Date) (allocation.DayGrid, error) {
	var grid allocation.DayGrid
	err := c.do(ctx, ownerID, request{
		method: http.MethodGet,
		path:   "/grid",
		query:  map[string]string{"date": date.String()},
		result: &grid,
	})
	return grid, err
}

func (c *Client) Overlaps(ctx context.Context, ownerID string, from, to calendar.Date) ([]allocation.Overlap, error) {
	var overlaps []allocation.Overlap
	err := c.do(ctx, ownerID, request{
		method: http.MethodGet,
		path:   "/overlaps",
		query:  rangeQuery(from, to),
		result: &overlaps,
	})
	return overlaps, err
}

func (c *Client) Stats(ctx context.Context, ownerID string, from, to calendar.Date) (statistics.Summary, error) {
	var summary statistics.Summary
	err := c.do(ctx, ownerID, request{
		method: http.MethodGet,
		path:   "/stats",
		query:  rangeQuery(from, to),
		result: &summary,
	})
	return summary, err
}

func rangeQuery(from, to calendar.Date) map[string]string {
	return map[string]string{"from": from.String(), "to": to.String()}
}
