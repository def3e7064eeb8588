package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/genai"
)

const advisoryModel = "gemini-2.0-flash"

// Fixed fallback strings returned whenever the text-generation service is
// unavailable. Advisory text is never persisted and failures never surface
// to the caller as errors.
const (
	AnalysisFallback = "We couldn't generate an analysis right now. Please try again later."
	FollowUpFallback = "Hi! We'd love to talk with you about the course you were referred to."
)

var advisoryClient *genai.Client

// InitAdvisory creates the text-generation client if an API key is
// configured. Without a key the advisory endpoints serve fallback text.
func InitAdvisory() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY is not set; advisory text generation disabled")
		return
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		log.Printf("Failed to create advisory client: %v", err)
		return
	}

	advisoryClient = client
}

// GenerateReferralAnalysis drafts a short sales-approach analysis for a
// referred candidate.
func GenerateReferralAnalysis(ctx context.Context, name, course, notes, status string) string {
	if notes == "" {
		notes = "No additional notes"
	}

	prompt := fmt.Sprintf(`Analyze the profile of this referred student and suggest a personalized sales approach:
Name: %s
Course: %s
Notes: %s
Current status: %s

Provide a short analysis and 3 key points for the approach.`, name, course, notes, status)

	text, err := generateText(ctx, prompt, genai.Ptr(float32(0.7)))
	if err != nil {
		log.Printf("Advisory analysis error: %v", err)
		return AnalysisFallback
	}
	return text
}

// GenerateFollowUpMessage drafts a short WhatsApp-style follow-up message
// for a referred candidate.
func GenerateFollowUpMessage(ctx context.Context, name, course, referrerName string) string {
	prompt := fmt.Sprintf(`Write a short, professional WhatsApp follow-up message for the student:
Name: %s
Course: %s
Context: They were referred by the employee %s.

The message should be friendly and inviting.`, name, course, referrerName)

	text, err := generateText(ctx, prompt, nil)
	if err != nil {
		log.Printf("Advisory follow-up error: %v", err)
		return FollowUpFallback
	}
	return text
}

func generateText(ctx context.Context, prompt string, temperature *float32) (string, error) {
	if advisoryClient == nil {
		return "", fmt.Errorf("advisory client is not configured")
	}

	var config *genai.GenerateContentConfig
	if temperature != nil {
		config = &genai.GenerateContentConfig{Temperature: temperature}
	}

	result, err := advisoryClient.Models.GenerateContent(ctx, advisoryModel, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from advisory model")
	}
	return text, nil
}
