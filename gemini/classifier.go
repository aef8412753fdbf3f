// Package gemini implements relevance classification using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Classifier implements sysiphe.Classifier at compile time.
var _ sysiphe.Classifier = (*Classifier)(nil)

// Classifier implements sysiphe.Classifier using Google Gemini.
type Classifier struct {
	client *genai.Client
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client) *Classifier {
	return &Classifier{client: client}
}

// verdict is the JSON shape the model is instructed to return.
type verdict struct {
	Relevant  bool   `json:"relevant"`
	Rationale string `json:"rationale"`
}

// Classify judges whether a discovered contact is a plausible outreach
// address for the company.
func (c *Classifier) Classify(ctx context.Context, target *sysiphe.Target, outcome *sysiphe.Outcome) (*sysiphe.Classification, error) {
	if target == nil || target.Name == "" {
		return nil, sysiphe.Errorf(sysiphe.EINVALID, "target name required")
	}
	if outcome == nil || outcome.Email == "" {
		return nil, sysiphe.Errorf(sysiphe.EINVALID, "outcome with email required")
	}

	prompt := BuildUserPrompt(target, outcome)
	config := BuildConfig()

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, sysiphe.Errorf(sysiphe.EINTERNAL, "gemini returned nil result")
	}

	var v verdict
	if err := json.Unmarshal([]byte(result.Text()), &v); err != nil {
		return nil, sysiphe.Errorf(sysiphe.EINTERNAL, "gemini returned malformed verdict: %s", err)
	}
	return &sysiphe.Classification{Relevant: v.Relevant, Rationale: v.Rationale}, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You judge whether an email address discovered on the web is a plausible public contact address for a given company. Respond with JSON only: {\"relevant\": bool, \"rationale\": string}. The rationale must be one short sentence.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the prompt describing the company and the
// discovered contact.
func BuildUserPrompt(target *sysiphe.Target, outcome *sysiphe.Outcome) string {
	var sb strings.Builder
	sb.WriteString("<company>\n")
	fmt.Fprintf(&sb, "<name>%s</name>\n", target.Name)
	if target.State != "" {
		fmt.Fprintf(&sb, "<state>%s</state>\n", target.State)
	}
	if target.Postcode != "" {
		fmt.Fprintf(&sb, "<postcode>%s</postcode>\n", target.Postcode)
	}
	sb.WriteString("</company>\n<contact>\n")
	fmt.Fprintf(&sb, "<email>%s</email>\n", outcome.Email)
	if outcome.Domain != "" {
		fmt.Fprintf(&sb, "<domain>%s</domain>\n", outcome.Domain)
	}
	if outcome.SourceURL != "" {
		fmt.Fprintf(&sb, "<source>%s</source>\n", outcome.SourceURL)
	}
	fmt.Fprintf(&sb, "<confidence>%d</confidence>\n", outcome.Confidence)
	sb.WriteString("</contact>\n\n")
	sb.WriteString("Is this email a plausible public contact address for the company?")
	return sb.String()
}
