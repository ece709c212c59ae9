package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minicade/minicade/internal/model"
)

// Client is the remote leaderboard backend: a generic CRUD resource where
// every record lives in one collection and comparator, sorting and
// trimming are the client's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the given collection URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// wireEntry is the remote record shape.
type wireEntry struct {
	ID       string `json:"id"`
	GameName string `json:"gameName"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

func (e wireEntry) entry() model.Entry {
	return model.Entry{ID: e.ID, Game: model.GameID(e.GameName), Nickname: e.Nickname, Score: e.Score}
}

// SubmitScore implements Gateway.
func (c *Client) SubmitScore(ctx context.Context, game model.GameID, nickname string, score int) (bool, error) {
	if nickname == "" {
		return false, fmt.Errorf("nickname is empty")
	}
	all, err := c.listAll(ctx)
	if err != nil {
		return false, err
	}

	var existing *wireEntry
	for i := range all {
		if all[i].GameName == string(game) && all[i].Nickname == nickname {
			existing = &all[i]
			break
		}
	}

	record := wireEntry{GameName: string(game), Nickname: nickname, Score: score}
	switch {
	case existing == nil:
		if err := c.send(ctx, http.MethodPost, c.baseURL, record); err != nil {
			return false, err
		}
	case model.BetterScore(game, score, existing.Score):
		if err := c.send(ctx, http.MethodPut, c.recordURL(existing.ID), record); err != nil {
			return false, err
		}
	default:
		// Existing score is at least as good; nothing to write.
		return true, nil
	}

	return true, c.trim(ctx, game)
}

// trim re-reads the game's records and deletes everything past TopN.
func (c *Client) trim(ctx context.Context, game model.GameID) error {
	entries, err := c.listGame(ctx, game)
	if err != nil {
		return err
	}
	for _, e := range entries[min(TopN, len(entries)):] {
		if err := c.send(ctx, http.MethodDelete, c.recordURL(e.ID), nil); err != nil {
			return err
		}
	}
	return nil
}

// FetchRankings implements Gateway.
func (c *Client) FetchRankings(ctx context.Context, game model.GameID) ([]model.Entry, error) {
	entries, err := c.listGame(ctx, game)
	if err != nil {
		return nil, err
	}
	if len(entries) > TopN {
		entries = entries[:TopN]
	}
	return entries, nil
}

// FetchAllRankings implements Gateway.
func (c *Client) FetchAllRankings(ctx context.Context) (map[model.GameID][]model.Entry, error) {
	all, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}
	out := map[model.GameID][]model.Entry{}
	for _, game := range model.Games {
		var entries []model.Entry
		for _, e := range all {
			if e.GameName == string(game) {
				entries = append(entries, e.entry())
			}
		}
		sortEntries(game, entries)
		if len(entries) > TopN {
			entries = entries[:TopN]
		}
		out[game] = entries
	}
	return out, nil
}

// DeleteRecord implements Gateway.
func (c *Client) DeleteRecord(ctx context.Context, id string) (bool, error) {
	if err := c.send(ctx, http.MethodDelete, c.recordURL(id), nil); err != nil {
		return false, err
	}
	return true, nil
}

// RenameRecord implements Gateway.
func (c *Client) RenameRecord(ctx context.Context, id string, game model.GameID, score int, newNickname string) (bool, error) {
	if newNickname == "" {
		return false, fmt.Errorf("nickname is empty")
	}
	record := wireEntry{GameName: string(game), Nickname: newNickname, Score: score}
	if err := c.send(ctx, http.MethodPut, c.recordURL(id), record); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) listGame(ctx context.Context, game model.GameID) ([]model.Entry, error) {
	all, err := c.listAll(ctx)
	if err != nil {
		return nil, err
	}
	var entries []model.Entry
	for _, e := range all {
		if e.GameName == string(game) {
			entries = append(entries, e.entry())
		}
	}
	sortEntries(game, entries)
	return entries, nil
}

func (c *Client) listAll(ctx context.Context) ([]wireEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected leaderboard status: %s", resp.Status)
	}
	var entries []wireEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return entries, nil
}

func (c *Client) send(ctx context.Context, method, url string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}

func (c *Client) recordURL(id string) string {
	return c.baseURL + "/" + id
}
