package models

// WebsiteOutcome summarizes one website's share of a generation run.
type WebsiteOutcome struct {
	WebsiteID   string `json:"website_id"`
	WebsiteName string `json:"website_name"`
	Processed   int    `json:"processed"`
	Generated   int    `json:"generated"`
	Failed      int    `json:"failed"`
	Error       string `json:"error,omitempty"`
}

// RunReport is the summary returned by one invocation of the generation
// cycle. A run with nothing to do is a successful empty report.
type RunReport struct {
	Policy             string           `json:"policy"`
	WebsitesConsidered int              `json:"websites_considered"`
	KeywordsProcessed  int              `json:"keywords_processed"`
	ArticlesGenerated  int              `json:"articles_generated"`
	PerWebsite         []WebsiteOutcome `json:"per_website"`
	Error              string           `json:"error,omitempty"`
}

type CreateGenerationTaskRequest struct {
	WebsiteID     string `json:"website_id" validate:"required,uuid4"`
	KeywordPlanID string `json:"keyword_plan_id" validate:"omitempty,uuid4"`
	Model         string `json:"model"`
	Temperature   string `json:"temperature"`
	Prompt        string `json:"prompt"`
}

type TestGenerateRequest struct {
	Keyword     string `json:"keyword" validate:"required,min=2,max=255"`
	WebsiteName string `json:"website_name"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
}

type TaskListParams struct {
	WebsiteID string `form:"website_id"`
	Status    string `form:"status"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
}
