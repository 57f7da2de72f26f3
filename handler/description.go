package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"theater_manager/config"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
)

const descriptionFallback = "No description generated."

const geminiDefaultURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

var descriptionHTTPClient = &http.Client{Timeout: 30 * time.Second}

type generateDescriptionInput struct {
	MovieTitle string `json:"movieTitle"`
}

// GenerateDescription proxies one prompt to the generative-text service
// and returns its reply verbatim. Upstream failure degrades to the
// fallback string; only a missing API key is a hard error.
func GenerateDescription(c *fiber.Ctx) error {
	var input generateDescriptionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "movieTitle is required", err)
	}
	if input.MovieTitle == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "movieTitle is required", errors.New("empty movieTitle"))
	}

	apiKey := config.Config("GEMINI_API_KEY")
	if apiKey == "" {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing Gemini API key", errors.New("GEMINI_API_KEY not set"))
	}

	prompt := fmt.Sprintf(`Do not give me options, just write one creative and somewhat short movie description for the movie titled: %q`, input.MovieTitle)

	description, err := callGemini(apiKey, prompt)
	if err != nil {
		log.Printf("description generation failed for %q: %v", input.MovieTitle, err)
		description = descriptionFallback
	}
	if description == "" {
		description = descriptionFallback
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"description": description,
	})
}

func callGemini(apiKey, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
	}

	body, _ := json.Marshal(reqBody)
	url := config.ConfigDefault("GEMINI_API_URL", geminiDefaultURL)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := descriptionHTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
