package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVerification получает статус проверки личности пользователя
func (c *Client) GetVerification(ctx context.Context, userID int64) (*Verification, error) {
	url := fmt.Sprintf("%s/internal/users/%d/verification", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var verification Verification
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &verification, nil
}

// IsVerified возвращает признак проверенного гостя с graceful degradation:
// при недоступности UserService гость считается непроверенным, ошибка не возвращается.
// Неизвестный пользователь (ErrUserNotFound) пробрасывается.
func (c *Client) IsVerified(ctx context.Context, userID int64) (bool, error) {
	verification, err := c.GetVerification(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Warn("IsVerified: user not found, user_id=%d", userID)
			return false, err
		}

		// Повышаем уровень до ERROR, чтобы быстрее заметить недоступность сервиса
		c.log.Error("IsVerified: UserService unavailable, treating user_id=%d as unverified: %v", userID, err)
		return false, nil
	}

	return verification.Verified, nil
}
