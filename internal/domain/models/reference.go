package models

// Reference is one row of a lookup entity (departments, roles, skills, positions, benefits, levels).
// The backend labels some with name and others with title.
type Reference struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

func (r Reference) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Title
}

// Labels joins the display labels of refs.
func Labels(refs []Reference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Label())
	}
	return out
}

// IDs returns the identifiers of refs.
func IDs(refs []Reference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ID)
	}
	return out
}
