package match

// DefaultStatuses is the accepted trial status set for matching
var DefaultStatuses = []string{
	"RECRUITING",
	"NOT_YET_RECRUITING",
	"ENROLLING_BY_INVITATION",
}

// Profile is the subset of a user profile relevant to trial matching. It is
// owned by the profile-management collaborator and read-only here.
type Profile struct {
	CancerType string `json:"cancer_type"`
	Age        int    `json:"age"`
	ZipCode    string `json:"zip_code"`
	InUSA      bool   `json:"in_usa"`
}

// Criteria is derived from a profile once per matching invocation. It is not
// persisted itself; its effect is the persisted match set.
type Criteria struct {
	CancerType string
	Age        int
	ZipCode    string
	Statuses   []string
}

// CriteriaFromProfile derives matching criteria from a profile. The second
// return value is false when the minimum criteria are unsatisfiable, which
// happens only when the cancer type is unknown. The ZIP constraint applies
// only to in-country users that actually have one; without it the location
// constraint is omitted rather than failing the run.
func CriteriaFromProfile(profile Profile) (Criteria, bool) {
	if profile.CancerType == "" {
		return Criteria{}, false
	}

	criteria := Criteria{
		CancerType: profile.CancerType,
		Age:        profile.Age,
		Statuses:   DefaultStatuses,
	}

	if profile.InUSA && profile.ZipCode != "" {
		criteria.ZipCode = profile.ZipCode
	}

	return criteria, true
}
