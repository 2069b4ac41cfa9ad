// Package apiclient talks to the LevelUp HTTP API and implements the study loaders.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/at-ishikawa/levelup/internal/study"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const apiV1Prefix = "/api/v1"

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

var (
	_ study.QuizLoader      = (*Client)(nil)
	_ study.FlashcardLoader = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
		retryDelay:       200 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError retries server errors, rate limiting and transport failures.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func (client *Client) do(ctx context.Context, operation string, f func() error) error {
	return retry.Do(
		func() error {
			err := f()
			if err != nil && !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying LevelUp API call",
				"operation", operation,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
}

func checkResponse(response *resty.Response) error {
	if response.IsError() {
		return &StatusError{StatusCode: response.StatusCode(), Body: response.String()}
	}
	return nil
}

// LoadQuiz asks the backend to generate a quiz.
func (client *Client) LoadQuiz(ctx context.Context, options study.QuizOptions) (study.Quiz, error) {
	requestBody := QuizGenerateRequest{
		NumQuestions: options.NumQuestions,
		Title:        options.Title,
		Category:     nullable(options.Category),
		Difficulty:   nullable(options.Difficulty),
	}

	var result QuizResponse
	if err := client.do(ctx, "LoadQuiz", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetBody(requestBody).
			SetResult(&QuizResponse{}).
			Post(apiV1Prefix + "/quiz/generate")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if err := checkResponse(response); err != nil {
			return err
		}
		body, ok := response.Result().(*QuizResponse)
		if !ok || body == nil {
			return fmt.Errorf("empty quiz response: %s", response.String())
		}
		result = *body
		return nil
	}); err != nil {
		return study.Quiz{}, err
	}

	slog.Default().Debug("quiz generated",
		"id", result.ID,
		"questions", len(result.Questions),
	)
	return result.toQuiz(), nil
}

// LoadFlashcards fetches every flashcard.
func (client *Client) LoadFlashcards(ctx context.Context) ([]study.Flashcard, error) {
	var result []FlashcardResponse
	if err := client.do(ctx, "LoadFlashcards", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetResult(&[]FlashcardResponse{}).
			Get(apiV1Prefix + "/flashcards/")
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if err := checkResponse(response); err != nil {
			return err
		}
		body, ok := response.Result().(*[]FlashcardResponse)
		if !ok || body == nil {
			return fmt.Errorf("empty flashcards response: %s", response.String())
		}
		result = *body
		return nil
	}); err != nil {
		return nil, err
	}

	cards := make([]study.Flashcard, len(result))
	for i, card := range result {
		cards[i] = card.toFlashcard()
	}
	return cards, nil
}

func (client *Client) GetFlashcard(ctx context.Context, id string) (study.Flashcard, error) {
	var result FlashcardResponse
	if err := client.do(ctx, "GetFlashcard", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetPathParam("id", id).
			SetResult(&FlashcardResponse{}).
			Get(apiV1Prefix + "/flashcards/{id}")
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if err := checkResponse(response); err != nil {
			return err
		}
		result = *response.Result().(*FlashcardResponse)
		return nil
	}); err != nil {
		return study.Flashcard{}, err
	}
	return result.toFlashcard(), nil
}

// CreateFlashcard is not retried so a slow success cannot create duplicates.
func (client *Client) CreateFlashcard(ctx context.Context, card study.Flashcard) (study.Flashcard, error) {
	tags := card.Tags
	if tags == nil {
		tags = []string{}
	}
	requestBody := FlashcardCreateRequest{
		Question:   card.Question,
		Answer:     card.Answer,
		Category:   nullable(card.Category),
		Difficulty: card.Difficulty,
		Tags:       tags,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&FlashcardResponse{}).
		Post(apiV1Prefix + "/flashcards/")
	if err != nil {
		return study.Flashcard{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if err := checkResponse(response); err != nil {
		return study.Flashcard{}, err
	}
	return response.Result().(*FlashcardResponse).toFlashcard(), nil
}

func (client *Client) Health(ctx context.Context) (HealthResponse, error) {
	var result HealthResponse
	if err := client.do(ctx, "Health", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetResult(&HealthResponse{}).
			Get("/health")
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if err := checkResponse(response); err != nil {
			return err
		}
		result = *response.Result().(*HealthResponse)
		return nil
	}); err != nil {
		return HealthResponse{}, err
	}
	return result, nil
}
