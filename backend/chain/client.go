package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Gateway is the external collaborator that builds, signs and submits
// transactions with the admin account: token mints, resume NFTs and resume
// progress updates. Every call blocks until the transaction is confirmed and
// any error is fatal for the enclosing request.
type Gateway interface {
	MintTokens(ctx context.Context, address string, amount int64) (string, error)
	MintResume(ctx context.Context, address, name, description, baseURI string) (string, error)
	UpdateResumeProgress(ctx context.Context, progress ResumeProgress) (string, error)
	QuestTokenBalance(ctx context.Context, address string) (int64, error)
}

// ResumeProgress is the aggregate pushed to the on-chain developer resume
// after a course completion.
type ResumeProgress struct {
	Address    string `json:"address"`
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	Challenges int    `json:"challenges"`
	Score      int    `json:"score"`
	Attempts   int    `json:"attempts"`
	Hints      int    `json:"hints"`
}

// Client talks to the chain signer service over JSON/HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type txResponse struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash"`
	Balance         int64  `json:"balance"`
	Message         string `json:"message"`
}

func (c *Client) MintTokens(ctx context.Context, address string, amount int64) (string, error) {
	resp, err := c.post(ctx, "/mint", map[string]interface{}{
		"address": address,
		"amount":  amount,
	})
	if err != nil {
		return "", err
	}
	return resp.TransactionHash, nil
}

func (c *Client) MintResume(ctx context.Context, address, name, description, baseURI string) (string, error) {
	resp, err := c.post(ctx, "/mintResume", map[string]interface{}{
		"address":     address,
		"name":        name,
		"description": description,
		"baseUri":     baseURI,
	})
	if err != nil {
		return "", err
	}
	return resp.TransactionHash, nil
}

func (c *Client) UpdateResumeProgress(ctx context.Context, progress ResumeProgress) (string, error) {
	resp, err := c.post(ctx, "/updateResumeProgress", progress)
	if err != nil {
		return "", err
	}
	return resp.TransactionHash, nil
}

func (c *Client) QuestTokenBalance(ctx context.Context, address string) (int64, error) {
	resp, err := c.post(ctx, "/balance", map[string]interface{}{
		"address": address,
	})
	if err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*txResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var decoded txResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("chain service %s: decoding response: %w", path, err)
	}

	if res.StatusCode != http.StatusOK || !decoded.Success {
		message := decoded.Message
		if message == "" {
			message = res.Status
		}
		return nil, fmt.Errorf("chain service %s: %s", path, message)
	}

	return &decoded, nil
}
