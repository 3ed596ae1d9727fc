package comparables

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"property_valuation/pkg/core/llm"
	"property_valuation/pkg/core/prompt"
	"property_valuation/pkg/core/utils"
	"property_valuation/pkg/models"
)

const (
	SourceAI    = "ai"
	SourceRules = "rules"
)

// Selection is the outcome of a comparable selection run.
type Selection struct {
	Comparables []models.ComparablePlot `json:"comparables"`
	Rationale   string                  `json:"rationale,omitempty"`
	Source      string                  `json:"source"`
}

type modelReply struct {
	SelectedIDs []string `json:"selected_ids"`
	Rationale   string   `json:"rationale"`
}

// Selector ranks candidates with an LLM and falls back to the rule-based
// shortlist whenever the provider or its reply is unusable.
type Selector struct {
	Provider llm.Provider
	Prompts  *prompt.Registry // nil uses the global registry
	Logger   *zap.Logger
}

func NewSelector(provider llm.Provider, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{Provider: provider, Logger: logger}
}

// Select returns the chosen comparables. The only error is a cancelled context.
func (s *Selector) Select(ctx context.Context, subject *models.Plot, pool []models.ComparablePlot, c Criteria, asOf time.Time) (Selection, error) {
	unlimited := c
	unlimited.Limit = 0
	candidates := Filter(subject, pool, unlimited, asOf)
	fallback := Selection{Comparables: Filter(subject, pool, c, asOf), Source: SourceRules}

	if s.Provider == nil || len(candidates) == 0 {
		return fallback, nil
	}

	registry := s.Prompts
	if registry == nil {
		registry = prompt.Get()
	}
	tmpl, err := registry.GetPrompt(prompt.ComparableSelection)
	if err != nil {
		s.Logger.Warn("comparable prompt missing, using rules", zap.Error(err))
		return fallback, nil
	}
	userPrompt, err := buildPrompt(tmpl, subject, candidates, c.Limit)
	if err != nil {
		s.Logger.Warn("comparable prompt build failed, using rules", zap.Error(err))
		return fallback, nil
	}

	raw, err := s.Provider.GenerateResponse(ctx, userPrompt, tmpl.SystemPrompt, map[string]interface{}{"json": true})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Selection{}, ctxErr
	}
	if err != nil {
		s.Logger.Warn("comparable selection provider failed, using rules",
			zap.String("provider", s.Provider.Name()), zap.Error(err))
		return fallback, nil
	}

	var reply modelReply
	if err := utils.DecodeLenient(raw, &reply); err != nil {
		s.Logger.Warn("comparable selection reply unparseable, using rules",
			zap.String("provider", s.Provider.Name()), zap.Error(err))
		return fallback, nil
	}

	picked := pick(candidates, reply.SelectedIDs, c.Limit)
	if len(picked) == 0 {
		s.Logger.Warn("comparable selection reply named no known candidates, using rules",
			zap.Int("ids", len(reply.SelectedIDs)))
		return fallback, nil
	}

	s.Logger.Info("comparables selected",
		zap.String("provider", s.Provider.Name()),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(picked)))
	return Selection{Comparables: picked, Rationale: reply.Rationale, Source: SourceAI}, nil
}

// pick keeps the reply order, drops unknown and repeated IDs, and caps at limit.
func pick(candidates []models.ComparablePlot, ids []string, limit int) []models.ComparablePlot {
	byID := make(map[string]models.ComparablePlot, len(candidates))
	for _, cp := range candidates {
		byID[strings.ToLower(cp.ID.String())] = cp
	}
	seen := make(map[string]bool, len(ids))
	var out []models.ComparablePlot
	for _, id := range ids {
		key := strings.ToLower(strings.TrimSpace(id))
		cp, ok := byID[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

type promptCandidate struct {
	ID              string  `json:"id"`
	Location        string  `json:"location"`
	Price           float64 `json:"price"`
	Extent          float64 `json:"extent"`
	TransactionDate string  `json:"transaction_date"`
	Description     string  `json:"description,omitempty"`
}

func buildPrompt(tmpl *prompt.PromptTemplate, subject *models.Plot, candidates []models.ComparablePlot, limit int) (string, error) {
	list := make([]promptCandidate, len(candidates))
	for i, cp := range candidates {
		list[i] = promptCandidate{
			ID:              cp.ID.String(),
			Location:        cp.Location,
			Price:           cp.Price.InexactFloat64(),
			Extent:          cp.Extent.InexactFloat64(),
			TransactionDate: cp.TransactionDate.Format("2006-01-02"),
			Description:     cp.Description,
		}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", err
	}
	return prompt.RenderUserPrompt(tmpl, struct {
		Subject    *models.Plot
		Limit      int
		Candidates string
	}{subject, limit, string(data)})
}
