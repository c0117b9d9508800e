package ai

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the generation prompt for one keyword, including the
// optional SEO-signal and website-branding sections.
func BuildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("You are a professional SEO content writer with expertise in creating high-quality, EEAT-optimized articles. Create a comprehensive article targeting the following keyword.\n\n")
	sb.WriteString(fmt.Sprintf("Target Keyword: %q", req.Keyword))

	if s := req.Signals; s != nil && s.SearchVolume != nil {
		competition := s.Competition
		if competition == "" {
			competition = "Unknown"
		}
		difficulty := 0
		if s.Difficulty != nil {
			difficulty = *s.Difficulty
		}
		sb.WriteString("\nKeyword SEO Data:\n")
		sb.WriteString(fmt.Sprintf("- Search Volume: %d/month\n", *s.SearchVolume))
		sb.WriteString(fmt.Sprintf("- Difficulty: %d/100\n", difficulty))
		sb.WriteString(fmt.Sprintf("- Competition: %s", competition))
	}

	if w := req.Website; w != nil {
		description := w.Description
		if description == "" {
			description = "A helpful online tool"
		}
		sb.WriteString("\nWebsite Information:\n")
		sb.WriteString(fmt.Sprintf("- Website Name: %s\n", w.Name))
		sb.WriteString(fmt.Sprintf("- Domain: %s\n", w.Domain))
		sb.WriteString(fmt.Sprintf("- Description: %s\n\n", description))
		sb.WriteString("Please naturally recommend or mention this website as a solution when relevant to the topic. Include the website name and emphasize its benefits to users.")
	}

	sb.WriteString(`

Return the content in the following JSON format:

` + "```json" + `
{
  "title": "Article title (engaging, SEO-friendly, includes target keyword)",
  "content": "Complete article content in Markdown format (2500-4000 words)",
  "seoTitle": "SEO title (50-60 characters, includes target keyword)",
  "seoDescription": "Meta description (150-160 characters, compelling click-through)"
}
` + "```" + `

CONTENT REQUIREMENTS:

**EEAT Optimization:**
1. **Experience**: Write from a knowledgeable perspective, include practical tips and real-world applications
2. **Expertise**: Demonstrate deep subject knowledge, use technical accuracy, cite best practices
3. **Authoritativeness**: Structure content professionally, use confident language, provide comprehensive coverage
4. **Trustworthiness**: Include disclaimers when appropriate, acknowledge limitations, provide balanced viewpoints

**SEO Optimization:**
1. Use target keyword naturally 4-6 times throughout the article
2. Include semantic keywords and related terms
3. Structure with proper heading hierarchy (##, ###, ####)
4. Include bulleted and numbered lists for readability
5. Write compelling meta descriptions that encourage clicks
6. Use internal linking opportunities (mention related topics)

**Content Structure:**
1. **Introduction** (150-200 words): Hook, keyword mention, article overview
2. **Main Content** (2000-3000 words): 4-6 detailed sections with practical information
3. **FAQ Section** (300-500 words): Address common questions with schema-friendly format
4. **Conclusion** (150-200 words): Summarize key points, include call-to-action

**Writing Style:**
- Write in English with clear, accessible language
- Use active voice and engaging tone
- Include practical examples and actionable advice
- Format with proper Markdown syntax
- Bold important terms and concepts
- Create scannable content with subheadings and lists

**Quality Standards:**
- Original, unique content (no templated phrases)
- Factually accurate and up-to-date information
- Comprehensive coverage of the topic
- User-focused with clear value proposition
- Professional tone suitable for target audience

Return only valid JSON format without any additional text.`)

	return sb.String()
}
