package settings

// Settings holds the environment-specific values resolved before the server
// starts. Fields are plain strings deployed per environment; code reading a
// Settings value never sees it change.
type Settings struct {
	BaseURL string `json:"baseUrl"`
}

// Patch is the contribution of a single loader: every field is optional so
// that "not present in the document" and "present but empty" stay distinct.
// Independent loaders are expected to set disjoint fields.
type Patch struct {
	BaseURL *string
}

// Apply returns a copy of s with the patch's set fields overwritten.
func (p Patch) Apply(s Settings) Settings {
	if p.BaseURL != nil {
		s.BaseURL = *p.BaseURL
	}
	return s
}

// IsZero reports whether the patch carries no fields at all.
func (p Patch) IsZero() bool {
	return p.BaseURL == nil
}
