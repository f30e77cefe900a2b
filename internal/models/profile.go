package models

// RawDocument is the uploaded resume as received from the transport
// layer. Created per request, discarded after extraction.
type RawDocument struct {
	Content   []byte
	MediaType string
	Filename  string
}

// NormalizedText is the output of the text normalizer: the lemmatized
// token sequence plus the original sentence boundaries, which are kept
// so downstream stages can quote evidence and scope pattern scans.
type NormalizedText struct {
	Tokens    []string
	Sentences []string
}

// ExperienceUnknown marks an experience-years value that could not be
// detected on either side.
const ExperienceUnknown = -1

// EducationLevel is the ordinal education ranking shared by profiles
// and requirements.
type EducationLevel int

const (
	EducationUnknown EducationLevel = iota - 1
	EducationNone
	EducationHighSchool
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

func (l EducationLevel) String() string {
	switch l {
	case EducationNone:
		return "none"
	case EducationHighSchool:
		return "high_school"
	case EducationAssociate:
		return "associate"
	case EducationBachelor:
		return "bachelor"
	case EducationMaster:
		return "master"
	case EducationDoctorate:
		return "doctorate"
	default:
		return "unknown"
	}
}

// CandidateProfile is the structured signal extracted from a resume.
// Skills hold canonical, deduplicated names in sorted order.
type CandidateProfile struct {
	Skills          []string
	ExperienceYears int
	Education       EducationLevel
	SoftSkills      []string
}

// JobRequirement is the structured signal extracted from a job
// description. Immutable once built.
type JobRequirement struct {
	RequiredSkills     []string
	PreferredSkills    []string
	MinExperienceYears int
	MinEducation       EducationLevel
	SoftSkills         []string
}

// AllSkills returns the union of required and preferred skills, sorted
// and deduplicated.
func (r *JobRequirement) AllSkills() []string {
	return MergeSorted(r.RequiredSkills, r.PreferredSkills)
}
