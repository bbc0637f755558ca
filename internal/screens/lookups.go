package screens

import (
	"context"
	"sort"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/domain/models"
)

// Lookup sources served by /options/:source and used to fill selects.
const (
	SourceDepartments = "departments"
	SourceRoles       = "roles"
	SourceSkills      = "skills"
	SourcePositions   = "positions"
	SourceBenefits    = "benefits"
	SourceLevels      = "levels"
	SourceUsers       = "users"
	SourceJobs        = "jobs"
	SourceCandidates  = "candidates"
)

// SelfOptionURL answers with the signed-in user as an option, for "assign me" buttons.
const SelfOptionURL = "/profile/option"

// Lookups loads reference data as select options.
type Lookups struct {
	refs       map[string]apiclient.Resource[models.Reference]
	users      apiclient.Resource[models.User]
	jobs       apiclient.Resource[models.Job]
	candidates apiclient.Resource[models.Candidate]
}

func NewLookups(c *apiclient.Client) *Lookups {
	refs := map[string]apiclient.Resource[models.Reference]{}
	for _, s := range []string{SourceDepartments, SourceRoles, SourceSkills, SourcePositions, SourceBenefits, SourceLevels} {
		refs[s] = apiclient.NewResource[models.Reference](c, s)
	}
	return &Lookups{
		refs:       refs,
		users:      apiclient.NewResource[models.User](c, SourceUsers),
		jobs:       apiclient.NewResource[models.Job](c, SourceJobs),
		candidates: apiclient.NewResource[models.Candidate](c, SourceCandidates),
	}
}

// Sources lists every known source name.
func (l *Lookups) Sources() []string {
	out := []string{SourceUsers, SourceJobs, SourceCandidates}
	for s := range l.refs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Options fetches the full list behind source.
func (l *Lookups) Options(ctx context.Context, source string) ([]domain.Option, error) {
	if r, ok := l.refs[source]; ok {
		items, err := r.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return toOptions(items, func(it models.Reference) domain.Option {
			return domain.Option{Label: it.Label(), Value: it.ID}
		}), nil
	}
	switch source {
	case SourceUsers:
		items, err := l.users.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return toOptions(items, func(u models.User) domain.Option {
			label := u.FullName
			if label == "" {
				label = u.Username
			}
			return domain.Option{Label: label, Value: u.ID}
		}), nil
	case SourceJobs:
		items, err := l.jobs.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return toOptions(items, func(j models.Job) domain.Option {
			return domain.Option{Label: j.Title, Value: j.ID}
		}), nil
	case SourceCandidates:
		items, err := l.candidates.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return toOptions(items, func(c models.Candidate) domain.Option {
			return domain.Option{Label: c.FullName, Value: c.ID}
		}), nil
	}
	return nil, domain.NotFoundError{Resource: "option source " + source}
}

func toOptions[T any](items []T, fn func(T) domain.Option) []domain.Option {
	out := make([]domain.Option, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// enumOptions builds static options from an enum's values and labels.
func enumOptions[E ~string](values []E, label func(E) string) []domain.Option {
	out := make([]domain.Option, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Option{Label: label(v), Value: string(v)})
	}
	return out
}

var genderOptions = []domain.Option{
	{Label: models.GenderLabel(true), Value: "true"},
	{Label: models.GenderLabel(false), Value: "false"},
}
