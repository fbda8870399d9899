package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ============================================================
// ProEventIQ API Client
// ============================================================

// Client — типизированный клиент REST API площадок и событий.
// Токен авторизации прозрачно пробрасывается из запроса браузера.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError — ответ апстрима со статусом вне 2xx.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// ============================================================
// Venue / Sector
// ============================================================

func (c *Client) GetVenue(ctx context.Context, token, venueID string) (*Venue, error) {
	var venue Venue
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/venues/%s", venueID), nil, &venue)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return &venue, nil
}

func (c *Client) GetSector(ctx context.Context, token, venueID, sectorID string) (*Sector, error) {
	var sector Sector
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/venues/%s/sectors/%s", venueID, sectorID), nil, &sector)
	if err != nil {
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &sector, nil
}

func (c *Client) UpdateSector(ctx context.Context, token, venueID, sectorID string, upd SectorUpdate) (*Sector, error) {
	var sector Sector
	err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/venues/%s/sectors/%s", venueID, sectorID), upd, &sector)
	if err != nil {
		return nil, fmt.Errorf("update sector: %w", err)
	}
	return &sector, nil
}

func (c *Client) UpdateSectorSeats(ctx context.Context, token, venueID, sectorID string, upd SeatTreeUpdate) (*Sector, error) {
	var sector Sector
	err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/venues/%s/sectors/%s/seats", venueID, sectorID), upd, &sector)
	if err != nil {
		return nil, fmt.Errorf("update sector seats: %w", err)
	}
	return &sector, nil
}

// ============================================================
// Reservations / Participants
// ============================================================

func (c *Client) GetReservations(ctx context.Context, token, eventID string) ([]Reservation, error) {
	var out []Reservation
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/events/%s/reservations", eventID), nil, &out)
	if err != nil {
		return nil, fmt.Errorf("get reservations: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateReservations(ctx context.Context, token, eventID string, batch []ReservationInput) ([]Reservation, error) {
	var out []Reservation
	err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/events/%s/reservations", eventID), batch, &out)
	if err != nil {
		return nil, fmt.Errorf("update reservations: %w", err)
	}
	return out, nil
}

func (c *Client) GetEventParticipants(ctx context.Context, token, eventID string) ([]Participant, error) {
	var out []Participant
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/events/%s/participants", eventID), nil, &out)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	return out, nil
}

// Ping проверяет доступность апстрима. Используется при инициализации сессий.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "", http.MethodGet, "/health", nil, nil)
}

// ============================================================
// Transport
// ============================================================

func (c *Client) do(ctx context.Context, token, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
