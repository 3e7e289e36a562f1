package aiservice

import (
	"math"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

// The AI service is not strict about key casing, so every lookup accepts the
// snake_case key first and falls back to its camelCase form.
func field(obj gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := obj.Get(key); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func document(body []byte) (gjson.Result, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return gjson.Result{}, entities.ErrAIInvalidResponse
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return gjson.Result{}, entities.ErrAIInvalidResponse
	}
	return doc, nil
}

func score(v gjson.Result) int {
	return int(math.Round(v.Float()))
}

func stringList(v gjson.Result) []string {
	out := []string{}
	for _, item := range v.Array() {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseID(v gjson.Result) (uuid.UUID, bool) {
	id, err := uuid.Parse(v.String())
	return id, err == nil
}

func parseLeader(v gjson.Result) *entities.LeaderSuggestion {
	if !v.IsObject() {
		return nil
	}
	id, ok := parseID(v.Get("id"))
	if !ok {
		return nil
	}
	return &entities.LeaderSuggestion{
		ID:        id,
		Name:      v.Get("name").String(),
		Rationale: field(v, "rationale", "justification").String(),
	}
}

func parseAnalysis(v gjson.Result) entities.TeamAnalysis {
	return entities.TeamAnalysis{
		Strengths:     stringList(v.Get("strengths")),
		Weaknesses:    stringList(v.Get("weaknesses")),
		Compatibility: v.Get("compatibility").String(),
	}
}

func parseGeneratedTeam(body []byte) (entities.GeneratedTeam, error) {
	doc, err := document(body)
	if err != nil {
		return entities.GeneratedTeam{}, err
	}
	teams := doc.Get("teams")
	if !teams.IsArray() {
		return entities.GeneratedTeam{}, entities.ErrAIInvalidResponse
	}

	result := entities.GeneratedTeam{
		Teams:              make([]entities.ProposedTeam, 0, len(teams.Array())),
		RecommendedLeader:  parseLeader(field(doc, "recommended_leader", "recommendedLeader")),
		Analysis:           parseAnalysis(field(doc, "team_analysis", "teamAnalysis")),
		CompatibilityScore: score(field(doc, "compatibility_score", "compatibilityScore")),
	}
	result.Analysis.RecommendedLeader = result.RecommendedLeader

	for _, t := range teams.Array() {
		proposed := entities.ProposedTeam{
			TeamID:  field(t, "team_id", "teamId").String(),
			Members: []entities.ProposedMember{},
		}
		for _, m := range t.Get("members").Array() {
			id, ok := parseID(m.Get("id"))
			if !ok {
				continue
			}
			proposed.Members = append(proposed.Members, entities.ProposedMember{
				ID:        id,
				Name:      m.Get("name").String(),
				Role:      m.Get("role").String(),
				SfiaLevel: int(field(m, "sfia_level", "sfiaLevel").Int()),
			})
		}
		result.Teams = append(result.Teams, proposed)
	}
	return result, nil
}

func parseRecommendations(body []byte) ([]entities.MemberRecommendation, error) {
	doc, err := document(body)
	if err != nil {
		return nil, err
	}
	list := field(doc, "recommended_Members", "recommended_members", "recommendedMembers")
	if !list.IsArray() {
		return nil, entities.ErrAIInvalidResponse
	}

	out := make([]entities.MemberRecommendation, 0, len(list.Array()))
	for _, m := range list.Array() {
		id, ok := parseID(m.Get("id"))
		if !ok {
			continue
		}
		out = append(out, entities.MemberRecommendation{
			ID:                 id,
			Name:               m.Get("name").String(),
			CompatibilityScore: score(field(m, "compatibility_score", "compatibilityScore")),
			Analysis:           m.Get("analysis").String(),
			PotentialConflicts: stringList(field(m, "potential_conflicts", "potentialConflicts")),
			TeamImpact:         field(m, "team_impact", "teamImpact").String(),
		})
	}
	return out, nil
}

func parseCompatibility(body []byte) (entities.CompatibilityResult, error) {
	doc, err := document(body)
	if err != nil {
		return entities.CompatibilityResult{}, err
	}
	value := field(doc, "compatibility_score", "compatibilityScore")
	if !value.Exists() {
		return entities.CompatibilityResult{}, entities.ErrAIInvalidResponse
	}
	return entities.CompatibilityResult{
		Score:         score(value),
		Justification: doc.Get("justification").String(),
	}, nil
}

func parseReanalysis(body []byte) (entities.ReanalysisResult, error) {
	doc, err := document(body)
	if err != nil {
		return entities.ReanalysisResult{}, err
	}
	analysis := field(doc, "team_analysis", "teamAnalysis")
	if !analysis.IsObject() {
		return entities.ReanalysisResult{}, entities.ErrAIInvalidResponse
	}
	result := entities.ReanalysisResult{
		Analysis:           parseAnalysis(analysis),
		CompatibilityScore: score(field(doc, "compatibility_score", "compatibilityScore")),
	}
	result.Analysis.RecommendedLeader = parseLeader(field(doc, "recommended_leader", "recommendedLeader"))
	return result, nil
}
