package team

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

const profileLoadLimit = 8

// toCandidate flattens a complete profile into the shape the AI service scores.
func toCandidate(c entities.CompleteProfile, now time.Time) entities.CandidateProfile {
	p := c.Profile
	candidate := entities.CandidateProfile{
		ID:           p.ID,
		Name:         p.FullName(),
		Role:         p.Specialization,
		Technologies: make([]string, 0, len(c.Technologies)),
		SfiaLevel:    p.SfiaLevelGeneral,
		Mbti:         p.Mbti,
		Interests:    make([]string, 0, len(c.Interests)),
		Languages:    make([]string, 0, len(c.Languages)),
		Country:      p.Country,
		Timezone:     p.Timezone,
	}
	if len(c.SpecializedRoles) > 0 {
		r := c.SpecializedRoles[0]
		candidate.Role = r.RoleName
		candidate.Area = r.TechnicalAreaName
		candidate.Level = r.Level
	}
	for _, t := range c.Technologies {
		candidate.Technologies = append(candidate.Technologies, t.TechnologyName)
	}
	for _, i := range c.Interests {
		candidate.Interests = append(candidate.Interests, i.Name)
	}
	for _, l := range c.Languages {
		lang := l.Language
		if l.Proficiency != "" {
			lang += " (" + l.Proficiency + ")"
		}
		candidate.Languages = append(candidate.Languages, lang)
	}
	for _, w := range c.WorkExperiences {
		candidate.ExperienceMonths += w.Months(now)
	}
	return candidate
}

func (u *useCase) candidatePool(ctx context.Context, onlyAvailable bool, exclude map[uuid.UUID]struct{}) ([]entities.CandidateProfile, error) {
	profiles, err := u.profiles.ListCandidateProfiles(ctx, onlyAvailable)
	if err != nil {
		return nil, err
	}
	now := u.now()
	pool := make([]entities.CandidateProfile, 0, len(profiles))
	for _, p := range profiles {
		if _, skip := exclude[p.Profile.ID]; skip {
			continue
		}
		pool = append(pool, toCandidate(p, now))
	}
	return pool, nil
}

// loadProfiles fetches the complete profile of every member concurrently, keeping member order.
func (u *useCase) loadProfiles(ctx context.Context, members []entities.TeamMember) ([]entities.CompleteProfile, error) {
	out := make([]entities.CompleteProfile, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(profileLoadLimit)
	for i, m := range members {
		i, m := i, m
		g.Go(func() error {
			p, err := u.profiles.GetCompleteProfile(gctx, m.EmployeeProfileID)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *useCase) memberCandidates(ctx context.Context, members []entities.TeamMember) ([]entities.CandidateProfile, error) {
	profiles, err := u.loadProfiles(ctx, members)
	if err != nil {
		return nil, err
	}
	now := u.now()
	out := make([]entities.CandidateProfile, len(profiles))
	for i, p := range profiles {
		out[i] = toCandidate(p, now)
		if members[i].Role != "" {
			out[i].Role = members[i].Role
		}
	}
	return out, nil
}

func memberSet(team entities.Team) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(team.Members))
	for _, m := range team.Members {
		set[m.EmployeeProfileID] = struct{}{}
	}
	return set
}
