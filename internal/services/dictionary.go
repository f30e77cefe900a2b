package services

import (
	"strings"
	"sync"

	"resume-reviewer/internal/models"
)

// Dictionaries hold the process-wide canonical term tables consulted by
// the normalizer and the profile/requirement extractors. They are built
// once and never written afterwards, so concurrent reads need no
// locking.
type Dictionaries struct {
	// canonical maps a lowercased term (1-3 tokens joined by spaces) to
	// its canonical skill name. Synonyms map into the same canonical.
	canonical map[string]string
	maxGram   int

	// allowlist holds every token that appears in a skill term. These
	// survive stop-word filtering and lemmatization untouched, so "R"
	// and "Go" are not lost as noise.
	allowlist map[string]struct{}

	stopWords  map[string]struct{}
	softSkills map[string]string

	educationTerms []educationTerm
	requiredCues   []string
	preferredCues  []string
}

type educationTerm struct {
	term  string
	level models.EducationLevel
}

var (
	dictOnce sync.Once
	dict     *Dictionaries
)

// LoadDictionaries returns the shared dictionary tables, building them
// on first use.
func LoadDictionaries() *Dictionaries {
	dictOnce.Do(func() {
		dict = buildDictionaries()
	})
	return dict
}

// canonicalSkills lists every skill under its canonical name with the
// synonyms that resolve to it.
var canonicalSkills = map[string][]string{
	"python":        {"python3"},
	"java":          {},
	"javascript":    {"js", "ecmascript"},
	"typescript":    {"ts"},
	"go":            {"golang"},
	"rust":          {},
	"c":             {},
	"c++":           {"cpp"},
	"c#":            {"csharp"},
	"ruby":          {"ruby on rails", "rails"},
	"php":           {},
	"swift":         {},
	"kotlin":        {},
	"scala":         {},
	"r":             {},
	"sql":           {},
	"html":          {"html5"},
	"css":           {"css3"},
	"react":         {"reactjs", "react.js"},
	"angular":       {"angularjs"},
	"vue":           {"vuejs", "vue.js"},
	"node.js":       {"node", "nodejs"},
	"django":        {},
	"flask":         {},
	"spring":        {"spring boot"},
	"express":       {"expressjs"},
	"fastapi":       {},
	".net":          {"dotnet", "asp.net"},
	"graphql":       {},
	"rest":          {"rest api", "restful"},
	"grpc":          {},
	"aws":           {"amazon web services"},
	"gcp":           {"google cloud", "google cloud platform"},
	"azure":         {"microsoft azure"},
	"docker":        {},
	"kubernetes":    {"k8s"},
	"terraform":     {},
	"ansible":       {},
	"jenkins":       {},
	"ci/cd":         {"cicd", "continuous integration", "continuous delivery"},
	"git":           {"github", "gitlab"},
	"linux":         {"unix"},
	"bash":          {"shell scripting"},
	"postgresql":    {"postgres"},
	"mysql":         {},
	"mongodb":       {"mongo"},
	"redis":         {},
	"elasticsearch": {"elastic search"},
	"kafka":         {"apache kafka"},
	"rabbitmq":      {},
	"cassandra":     {},
	"dynamodb":      {},
	"sqlite":        {},
	"oracle":        {},
	"spark":         {"apache spark", "pyspark"},
	"hadoop":        {},
	"airflow":       {"apache airflow"},
	"tableau":       {},
	"power bi":      {"powerbi"},
	"excel":         {"microsoft excel"},
	"pandas":        {},
	"numpy":         {},
	"scikit-learn":  {"sklearn", "scikit learn"},
	"tensorflow":    {},
	"pytorch":       {},
	"keras":         {},
	"machine learning": {"ml"},
	"deep learning":    {},
	"nlp":              {"natural language processing"},
	"computer vision":  {"opencv"},
	"data analysis":    {"data analytics"},
	"data engineering":  {},
	"data visualization": {},
	"etl":                {},
	"microservices":      {"microservice architecture"},
	"api design":         {},
	"agile":              {"scrum", "kanban"},
	"jira":               {},
	"selenium":           {},
	"cypress":            {},
	"jest":               {},
	"junit":              {},
	"pytest":             {},
	"unit testing":       {"test driven development", "tdd"},
	"figma":              {},
	"photoshop":          {"adobe photoshop"},
	"illustrator":        {"adobe illustrator"},
	"ui/ux":              {"ux design", "ui design"},
	"salesforce":         {},
	"sap":                {},
	"matlab":             {},
	"solidity":           {},
	"blockchain":         {},
	"devops":             {},
	"security":           {"cybersecurity", "information security"},
	"networking":         {"tcp/ip"},
	"ios":                {},
	"android":            {},
	"react native":       {},
	"flutter":            {},
	"firebase":           {},
	"grafana":            {},
	"prometheus":         {},
}

// softSkillTerms map soft-skill phrasings to their canonical signal.
var softSkillTerms = map[string][]string{
	"communication":    {"communication skills", "verbal communication", "written communication"},
	"leadership":       {"leading teams", "team leadership", "lead"},
	"teamwork":         {"team player", "collaboration", "collaborative", "cross-functional"},
	"problem solving":  {"problem-solving", "analytical thinking", "analytical skills"},
	"adaptability":     {"flexibility", "adaptable"},
	"time management":  {"prioritization", "organizational skills"},
	"creativity":       {"creative thinking", "innovative", "innovation"},
	"attention to detail": {"detail oriented", "detail-oriented", "meticulous"},
	"mentoring":           {"mentorship", "coaching"},
	"ownership":           {"self-starter", "initiative", "proactive"},
}

// stopWordList is the fixed stop-word set removed during normalization.
// Skill-term tokens are allowlisted before this filter applies.
var stopWordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
	"can", "did", "do", "does", "for", "from", "had", "has", "have",
	"how", "i", "if", "in", "into", "is", "it", "its", "me", "more",
	"my", "no", "not", "of", "on", "or", "our", "so", "such", "than",
	"that", "the", "their", "them", "then", "there", "these", "they",
	"this", "to", "up", "was", "we", "were", "what", "when", "which",
	"who", "will", "with", "you", "your",
}

func buildDictionaries() *Dictionaries {
	d := &Dictionaries{
		canonical:  make(map[string]string),
		allowlist:  make(map[string]struct{}),
		stopWords:  make(map[string]struct{}),
		softSkills: make(map[string]string),
	}

	addTerm := func(term, canonical string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		d.canonical[term] = canonical
		tokens := strings.Fields(term)
		if len(tokens) > d.maxGram {
			d.maxGram = len(tokens)
		}
		for _, tok := range tokens {
			d.allowlist[tok] = struct{}{}
		}
	}

	for canonical, synonyms := range canonicalSkills {
		addTerm(canonical, canonical)
		for _, syn := range synonyms {
			addTerm(syn, canonical)
		}
	}

	for canonical, synonyms := range softSkillTerms {
		d.softSkills[canonical] = canonical
		for _, syn := range synonyms {
			d.softSkills[strings.ToLower(syn)] = canonical
		}
		for _, tok := range strings.Fields(canonical) {
			d.allowlist[tok] = struct{}{}
		}
	}

	for _, w := range stopWordList {
		d.stopWords[w] = struct{}{}
	}

	// Ordered highest-first so the first hit on a scan is never ranked
	// above by a later one.
	d.educationTerms = []educationTerm{
		{"phd", models.EducationDoctorate},
		{"ph.d", models.EducationDoctorate},
		{"doctorate", models.EducationDoctorate},
		{"doctoral", models.EducationDoctorate},
		{"master", models.EducationMaster},
		{"msc", models.EducationMaster},
		{"m.s", models.EducationMaster},
		{"mba", models.EducationMaster},
		{"bachelor", models.EducationBachelor},
		{"bsc", models.EducationBachelor},
		{"b.s", models.EducationBachelor},
		{"b.a", models.EducationBachelor},
		{"undergraduate degree", models.EducationBachelor},
		{"associate", models.EducationAssociate},
		{"high school", models.EducationHighSchool},
		{"ged", models.EducationHighSchool},
	}

	d.requiredCues = []string{"required", "must have", "must-have", "requirement", "essential", "mandatory"}
	d.preferredCues = []string{"nice to have", "nice-to-have", "preferred", "bonus", "a plus", "plus point", "desirable", "optional"}

	return d
}

// CanonicalSkill resolves a term to its canonical skill name.
func (d *Dictionaries) CanonicalSkill(term string) (string, bool) {
	c, ok := d.canonical[term]
	return c, ok
}

// CanonicalSoftSkill resolves a term to its canonical soft-skill signal.
func (d *Dictionaries) CanonicalSoftSkill(term string) (string, bool) {
	c, ok := d.softSkills[term]
	return c, ok
}

// Allowlisted reports whether a token belongs to a known skill term and
// must survive normalization untouched.
func (d *Dictionaries) Allowlisted(token string) bool {
	_, ok := d.allowlist[token]
	return ok
}

// IsStopWord reports whether a token is in the fixed stop-word set.
func (d *Dictionaries) IsStopWord(token string) bool {
	_, ok := d.stopWords[token]
	return ok
}

// MaxGram is the longest dictionary term length in tokens.
func (d *Dictionaries) MaxGram() int {
	return d.maxGram
}
