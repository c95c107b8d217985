package structure

// Mode selects the depth of LLM analysis.
type Mode string

const (
	ModeDeep Mode = "deep"
	ModeFast Mode = "fast"
)

// Input truncation caps keep prompts inside model context limits.
const (
	maxTitleChars       = 400
	maxDescriptionChars = 1200
	maxContentChars     = 4000
)

const deepPrompt = `You are an expert UPSC mentor. Given the news item below, produce STRICT JSON only.

JSON SHAPE:
{
  "title": "short, 8-14 words headline for UPSC use",
  "summary_en": "5-7 line crisp UPSC-focused summary in English",
  "prelims_points": ["3-6 factual bullets for MCQs"],
  "mains_angles": ["2-4 issue-analysis bullets for GS mains"],
  "interview_questions": ["2-3 viva-style questions"],
  "schemes_acts_policies": ["Union/State schemes, Acts, Policies, Rules"],
  "institutions": ["Courts, regulators, commissions, ministries, intl bodies"],
  "dates": ["important dates found in text, ISO or human"],
  "category": "one of: polity, economy, international, environment, science_tech, social, security, geography, governance, general"
}

STRICT RULES:
- Output ONLY valid JSON. No markdown, no commentary.
- Use arrays as arrays. If none, use [].
- Category must be exactly one of the allowed values (lower_snake).
- Keep neutral tone, exam-ready.
- Prefer India/UPSC relevance.

NEWS:
Title: %s
Description: %s
Content: %s
URL: %s
Source: %s
`

const fastPrompt = `UPSC quick triage. Return STRICT JSON only with:
{
  "title": "short headline",
  "summary_en": "2-3 lines",
  "prelims_points": ["1-3 bullets"],
  "mains_angles": ["1-2 bullets"],
  "interview_questions": [],
  "schemes_acts_policies": [],
  "institutions": [],
  "dates": [],
  "category": "polity|economy|international|environment|science_tech|social|security|geography|governance|general"
}

STRICT: JSON only, arrays as arrays, category in allowed set.

NEWS:
Title: %s
Description: %s
Content: %s
URL: %s
Source: %s
`

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
