package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/collegeconnect/backend/internal/providers/llm"
	"github.com/collegeconnect/backend/internal/utils"
)

// ParsedResume is the structured career data lifted from a resume PDF. The
// shape mirrors CareerUpdate so the client can prefill the career form.
type ParsedResume struct {
	FullName    string                  `json:"fullName,omitempty"`
	Headline    string                  `json:"headline,omitempty"`
	Bio         string                  `json:"bio,omitempty"`
	Skills      []string                `json:"skills,omitempty"`
	Experiences []CareerExperienceInput `json:"experiences,omitempty"`
	Location    *CareerLocationInput    `json:"location,omitempty"`
}

const parseResumePrompt = `Extract structured career data from the resume text below.

Return ONLY a JSON object with these keys (omit what the resume does not state):
  "fullName":    string
  "headline":    string, a one-line professional title
  "bio":         string, a 2-3 sentence summary
  "skills":      array of skill names
  "experiences": array of objects with keys
                   "company" (string),
                   "title" (string),
                   "startDate" (YYYY-MM-DD; use the first of the month when only a month is given),
                   "endDate" (YYYY-MM-DD, or "Present" for a current role),
                   "description" (string)
  "location":    object with "city", "country", "locality"

No prose, no markdown, no code fences.

Resume text:
`

// resume text beyond this length adds noise and token cost without improving
// extraction
const maxResumeTextLen = 20000

type ResumeService interface {
	// Parse extracts career data from a PDF. A resume the extractor finds no
	// text in yields an empty result without calling the model.
	Parse(ctx context.Context, pdfData []byte) (*ParsedResume, error)
}

type resumeService struct {
	provider llm.Provider
}

func NewResumeService(provider llm.Provider) ResumeService {
	return &resumeService{provider: provider}
}

func (s *resumeService) Parse(ctx context.Context, pdfData []byte) (*ParsedResume, error) {
	const op = "ResumeService.Parse"

	if len(pdfData) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume file is empty", nil)
	}

	text, err := utils.ExtractPDFText(pdfData)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "could not read the PDF", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &ParsedResume{}, nil
	}
	if len(text) > maxResumeTextLen {
		text = text[:maxResumeTextLen]
	}

	if s.provider == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume parsing is not configured", nil)
	}

	raw, err := s.provider.Generate(ctx, parseResumePrompt+text)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume parsing failed", err)
	}
	return decodeResumeResponse(raw), nil
}

// decodeResumeResponse tolerates fenced or chatty model output. A response
// with no usable JSON decodes to an empty result, never an error.
func decodeResumeResponse(raw string) *ParsedResume {
	parsed := &ParsedResume{}
	cleaned := utils.StripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), parsed); err == nil {
		return parsed
	}
	obj, ok := utils.ExtractJSONObject(cleaned)
	if !ok {
		logrus.Warn("resume response had no JSON object")
		return &ParsedResume{}
	}
	if err := json.Unmarshal([]byte(obj), parsed); err != nil {
		logrus.WithError(err).Warn("resume response JSON did not parse")
		return &ParsedResume{}
	}
	return parsed
}
