package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/providers/llm"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// SearchFilters is the structured form of a natural-language directory query.
type SearchFilters struct {
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Skills          []string `json:"skills"`
	Companies       []string `json:"companies"`
	GraduationYears []string `json:"graduationYears"`
	Departments     []string `json:"departments"`
	Sections        []string `json:"sections"`
}

// QueryAnalyzer turns a free-text query into SearchFilters.
type QueryAnalyzer interface {
	Analyze(ctx context.Context, query string) (SearchFilters, error)
}

const analyzePrompt = `You convert a search query over a college directory of students and alumni into JSON filters.

Return ONLY a JSON object with these keys (omit or leave empty what the query does not mention):
  "name":            string, a person's name if the query looks like one
  "role":            "STUDENT" or "ALUMNI" if the query targets one group
  "skills":          array of skill names, e.g. ["Python", "React"]
  "companies":       array of company names, e.g. ["Google"]
  "graduationYears": array of 4-digit years as strings, e.g. ["2020"]
  "departments":     array of department names, e.g. ["Computer Science"]
  "sections":        array of section labels, e.g. ["A"]

No prose, no markdown, no code fences.

Query: `

var errUnparsableResponse = errors.New("no JSON object in model response")

type llmAnalyzer struct {
	provider llm.Provider
}

// NewLLMQueryAnalyzer analyzes queries with a language model.
func NewLLMQueryAnalyzer(p llm.Provider) QueryAnalyzer {
	return &llmAnalyzer{provider: p}
}

func (a *llmAnalyzer) Analyze(ctx context.Context, query string) (SearchFilters, error) {
	var filters SearchFilters

	raw, err := a.provider.Generate(ctx, analyzePrompt+query)
	if err != nil {
		return filters, err
	}

	cleaned := utils.StripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), &filters); err == nil {
		return filters, nil
	}

	// models sometimes wrap the object in prose despite the instructions
	obj, ok := utils.ExtractJSONObject(cleaned)
	if !ok {
		return filters, errUnparsableResponse
	}
	if err := json.Unmarshal([]byte(obj), &filters); err != nil {
		return filters, err
	}
	return filters, nil
}

// SearchResult is an analyzed directory search: the filters the analyzer
// derived plus the matching users.
type SearchResult struct {
	Filters SearchFilters `json:"filters"`
	Results utils.Paged   `json:"results"`
}

type SearchService interface {
	// AnalyzeAndSearch derives filters from the query and runs them. When the
	// analyzer fails or is not configured, the query falls back to a plain
	// name search so the endpoint always answers.
	AnalyzeAndSearch(ctx context.Context, caller Caller, query string, page utils.PageParams) (*SearchResult, error)
}

type searchService struct {
	users    pgrepo.UserRepository
	analyzer QueryAnalyzer
}

func NewSearchService(users pgrepo.UserRepository, analyzer QueryAnalyzer) SearchService {
	return &searchService{users: users, analyzer: analyzer}
}

func (s *searchService) AnalyzeAndSearch(ctx context.Context, caller Caller, query string, page utils.PageParams) (*SearchResult, error) {
	const op = "SearchService.AnalyzeAndSearch"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}

	filters := SearchFilters{Name: query}
	if s.analyzer != nil {
		analyzed, err := s.analyzer.Analyze(ctx, query)
		if err != nil {
			logrus.WithError(err).WithField("query", query).Warn("query analysis failed, falling back to name search")
		} else {
			filters = analyzed
			if filters.isEmpty() {
				filters.Name = query
			}
		}
	}

	p := pgrepo.SearchParams{
		NameLike:        filters.Name,
		Skills:          filters.Skills,
		Companies:       filters.Companies,
		ExactTerms:      false,
		GraduationYears: filters.GraduationYears,
		Departments:     filters.Departments,
		Sections:        filters.Sections,
		Offset:          page.Offset(),
		Limit:           page.Limit,
	}
	if models.ValidRole(filters.Role) {
		r := models.Role(filters.Role)
		p.Role = &r
	}
	if caller.Role != models.RoleSuperAdmin {
		p.CollegeID = caller.CollegeID
	}

	users, total, err := s.users.Search(ctx, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "search failed", err)
	}
	return &SearchResult{
		Filters: filters,
		Results: utils.NewPaged(total, page, users),
	}, nil
}

func (f SearchFilters) isEmpty() bool {
	return f.Name == "" && f.Role == "" &&
		len(f.Skills) == 0 && len(f.Companies) == 0 &&
		len(f.GraduationYears) == 0 && len(f.Departments) == 0 && len(f.Sections) == 0
}
