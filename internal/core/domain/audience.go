package domain

import "time"

// CustomAudienceTTL is how long a user-defined audience stays available.
const CustomAudienceTTL = 24 * time.Hour

// Audience is a selectable query qualifier.
type Audience struct {
	// Value is inserted into composed queries. Empty means any audience.
	Value string `json:"value"`

	// Label is the display name.
	Label string `json:"label"`

	// AddedAt is set for custom audiences only.
	AddedAt time.Time `json:"addedAt,omitempty"`
}

// IsCustom reports whether the audience was added by a user.
func (a Audience) IsCustom() bool {
	return !a.AddedAt.IsZero()
}

// Expired reports whether a custom audience has outlived CustomAudienceTTL.
func (a Audience) Expired(now time.Time) bool {
	return a.IsCustom() && now.Sub(a.AddedAt) >= CustomAudienceTTL
}

// BuiltInAudiences returns the fixed audience catalog.
func BuiltInAudiences() []Audience {
	return []Audience{
		{Value: "", Label: "Any audience"},
		{Value: "undergraduate", Label: "Undergraduate"},
		{Value: "graduate", Label: "Graduate"},
		{Value: "adult", Label: "Adult / Working Professional"},
		{Value: "online", Label: "Online Student"},
		{Value: "international", Label: "International"},
	}
}

// IsBuiltInAudience reports whether value belongs to the fixed catalog.
func IsBuiltInAudience(value string) bool {
	for _, a := range BuiltInAudiences() {
		if a.Value == value {
			return true
		}
	}
	return false
}

// ResolveAudience picks the per-answer audience when set,
// otherwise the question-level one.
func ResolveAudience(answer, question string) string {
	if answer != "" {
		return answer
	}
	return question
}
