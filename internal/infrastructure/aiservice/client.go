package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const (
	pathGenerateTeams   = "/generate-teams"
	pathGenerateBlended = "/generate-blended-team"
	pathFindMembers     = "/find-team-members"
	pathCompatibility   = "/calculate-compatibility"
	pathReanalyze       = "/reanalyze-team"

	maxErrorBody = 2048
)

// Recorder receives the outcome of every AI call.
type Recorder interface {
	ObserveAI(path string, duration time.Duration, ok bool)
}

// Client talks to the team-matching AI service over JSON/HTTP.
type Client struct {
	baseURL  string
	http     *http.Client
	recorder Recorder
	logger   logger.Logger
}

func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (c *Client) WithRecorder(r Recorder) *Client {
	c.recorder = r
	return c
}

func (c *Client) GenerateTeams(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error) {
	body, err := c.post(ctx, pathGenerateTeams, req)
	if err != nil {
		return entities.GeneratedTeam{}, err
	}
	return parseGeneratedTeam(body)
}

func (c *Client) GenerateBlendedTeam(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error) {
	body, err := c.post(ctx, pathGenerateBlended, req)
	if err != nil {
		return entities.GeneratedTeam{}, err
	}
	return parseGeneratedTeam(body)
}

func (c *Client) FindTeamMembers(ctx context.Context, req entities.MemberSearchRequest) ([]entities.MemberRecommendation, error) {
	body, err := c.post(ctx, pathFindMembers, req)
	if err != nil {
		return nil, err
	}
	return parseRecommendations(body)
}

func (c *Client) CalculateCompatibility(ctx context.Context, req entities.CompatibilityRequest) (entities.CompatibilityResult, error) {
	body, err := c.post(ctx, pathCompatibility, req)
	if err != nil {
		return entities.CompatibilityResult{}, err
	}
	return parseCompatibility(body)
}

func (c *Client) ReanalyzeTeam(ctx context.Context, req entities.ReanalysisRequest) (entities.ReanalysisResult, error) {
	body, err := c.post(ctx, pathReanalyze, req)
	if err != nil {
		return entities.ReanalysisResult{}, err
	}
	return parseReanalysis(body)
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, entities.Failure(entities.ErrAIService.Code, err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, entities.Failure(entities.ErrAIService.Code, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	ok := false
	if c.recorder != nil {
		defer func() { c.recorder.ObserveAI(path, time.Since(start), ok) }()
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ai service request failed", "path", path, "error", err)
		return nil, entities.Failure(entities.ErrAIService.Code, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read ai service response", "path", path, "error", err)
		return nil, entities.Failure(entities.ErrAIService.Code, err.Error())
	}
	c.logger.Debug("ai service responded", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if len(message) > maxErrorBody {
			message = message[:maxErrorBody]
		}
		if message == "" {
			message = resp.Status
		}
		c.logger.Error("ai service returned error", "path", path, "status", resp.StatusCode)
		return nil, entities.Failure(entities.ErrAIService.Code, message)
	}
	ok = true
	return body, nil
}
