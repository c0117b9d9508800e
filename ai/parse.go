package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// parseResponse extracts the structured article from a completion. Models
// usually wrap the JSON in a fenced block; fall back to the whole body.
func parseResponse(content string) (*GeneratedArticle, error) {
	payload := content
	if m := jsonBlockRe.FindStringSubmatch(content); m != nil {
		payload = m[1]
	}

	var article GeneratedArticle
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &article); err != nil {
		return nil, &ParseError{Reason: "invalid JSON: " + err.Error(), Raw: content}
	}

	article.Title = strings.TrimSpace(article.Title)
	article.Content = strings.TrimSpace(article.Content)
	article.SeoTitle = strings.TrimSpace(article.SeoTitle)
	article.SeoDescription = strings.TrimSpace(article.SeoDescription)

	missing := missingFields(&article)
	if len(missing) > 0 {
		return nil, &ParseError{
			Reason: "missing required fields: " + strings.Join(missing, ", "),
			Raw:    content,
		}
	}

	return &article, nil
}

func missingFields(a *GeneratedArticle) []string {
	var missing []string
	if a.Title == "" {
		missing = append(missing, "title")
	}
	if a.Content == "" {
		missing = append(missing, "content")
	}
	if a.SeoTitle == "" {
		missing = append(missing, "seoTitle")
	}
	if a.SeoDescription == "" {
		missing = append(missing, "seoDescription")
	}
	return missing
}
