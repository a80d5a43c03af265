package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	suggestionModel    = "llama-3.3-70b-versatile"
	suggestionCacheTTL = time.Hour
	suggestionTimeout  = 15 * time.Second
)

// Suggestion is one AI-generated skill or mentor-match idea.
type Suggestion struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MatchPercentage int      `json:"matchPercentage"`
	Tags            []string `json:"tags"`
}

// fallbackSuggestions is returned whenever the upstream API fails for any
// reason. The contract is fallback-on-failure: the end user never sees a
// hard error from this path.
var fallbackSuggestions = []Suggestion{
	{
		Name:            "Home Baking",
		Description:     "Turn your baking into custom cakes and treats for local events.",
		MatchPercentage: 85,
		Tags:            []string{"cooking", "baking", "local"},
	},
	{
		Name:            "Tailoring & Alterations",
		Description:     "Offer clothing repairs and custom fits from home.",
		MatchPercentage: 78,
		Tags:            []string{"sewing", "crafts"},
	},
	{
		Name:            "Online Tutoring",
		Description:     "Teach school subjects or languages you know well over video calls.",
		MatchPercentage: 72,
		Tags:            []string{"teaching", "remote"},
	},
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SuggestService wraps the Groq chat-completions API with a static prompt
// template, a Redis response cache and a hard-coded fallback payload.
type SuggestService struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	cache      *redis.Client
}

// NewSuggestService builds the client. cache may be nil; caching is then
// skipped entirely.
func NewSuggestService(apiKey, apiURL string, cache *redis.Client) *SuggestService {
	return &SuggestService{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: suggestionTimeout},
		cache:      cache,
	}
}

// SuggestSkills asks the LLM for skill suggestions matching the user's
// profile and existing skills. Any failure – transport, status, parse –
// yields the static fallback list, never an error.
func (s *SuggestService) SuggestSkills(ctx context.Context, userID uuid.UUID, profile models.PublicProfile, skills []models.Skill) []Suggestion {
	cacheKey := fmt.Sprintf("suggestions:%s", userID)

	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached
	}

	suggestions, err := s.callUpstream(ctx, profile, skills)
	if err != nil {
		logger.Log.Warn("Suggestion API failed, serving fallback",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return fallbackSuggestions
	}

	s.toCache(ctx, cacheKey, suggestions)

	return suggestions
}

func (s *SuggestService) callUpstream(ctx context.Context, profile models.PublicProfile, skills []models.Skill) ([]Suggestion, error) {
	skillNames := make([]string, 0, len(skills))
	for _, sk := range skills {
		skillNames = append(skillNames, sk.Name)
	}

	prompt := fmt.Sprintf(
		"Suggest marketable home-based skills as a JSON array of objects with "+
			"fields name, description, matchPercentage, tags. "+
			"Profile: %s, location %s. Existing skills: %v. Respond with JSON only.",
		profile.Bio, profile.Location, skillNames,
	)

	body, err := json.Marshal(chatRequest{
		Model: suggestionModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion API returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, err
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("suggestion API returned no choices")
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &suggestions); err != nil {
		return nil, fmt.Errorf("suggestion payload parse failed: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("suggestion API returned empty list")
	}

	return suggestions, nil
}

func (s *SuggestService) fromCache(ctx context.Context, key string) []Suggestion {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var suggestions []Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil
	}
	return suggestions
}

func (s *SuggestService) toCache(ctx context.Context, key string, suggestions []Suggestion) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, suggestionCacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache suggestions", zap.Error(err))
	}
}
