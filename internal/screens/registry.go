package screens

import "recruitadmin/internal/apiclient"

// Registry holds every entity screen in navigation order.
type Registry struct {
	Lookups *Lookups
	order   []Screen
	byName  map[string]Screen
}

func NewRegistry(c *apiclient.Client) *Registry {
	l := NewLookups(c)
	r := &Registry{Lookups: l, byName: map[string]Screen{}}
	r.add(Users(c, l))
	r.add(Candidates(c, l))
	r.add(Jobs(c, l))
	r.add(Interviews(c, l))
	return r
}

func (r *Registry) add(s Screen) {
	r.order = append(r.order, s)
	r.byName[s.Describe().Name] = s
}

func (r *Registry) All() []Screen {
	return append([]Screen(nil), r.order...)
}

func (r *Registry) Get(name string) (Screen, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Nav lists the screens a user with roles may open.
func (r *Registry) Nav(allowed func(roles []string) bool) []Meta {
	var out []Meta
	for _, s := range r.order {
		m := s.Describe()
		if allowed == nil || allowed(m.Roles) {
			out = append(out, m)
		}
	}
	return out
}
