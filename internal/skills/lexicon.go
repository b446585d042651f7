package skills

import "strings"

const (
	CategoryHard = "hard"
	CategorySoft = "soft"
)

type entry struct {
	name    string
	aliases []string
}

// hardSkills is the local skill inventory used when extraction is unavailable.
// Aliases are counted together with the canonical name.
var hardSkills = []entry{
	{"go", []string{"golang"}},
	{"python", nil},
	{"java", nil},
	{"javascript", []string{"js", "ecmascript"}},
	{"typescript", []string{"ts"}},
	{"c++", []string{"cpp", "c plus plus"}},
	{"c#", []string{"csharp", "c sharp"}},
	{"rust", nil},
	{"ruby", nil},
	{"php", nil},
	{"kotlin", nil},
	{"swift", nil},
	{"scala", nil},
	{"sql", nil},
	{"postgresql", []string{"postgres"}},
	{"mysql", nil},
	{"mongodb", []string{"mongo"}},
	{"redis", nil},
	{"kafka", []string{"apache kafka"}},
	{"rabbitmq", nil},
	{"elasticsearch", nil},
	{"graphql", nil},
	{"grpc", nil},
	{"rest api", []string{"restful", "rest apis"}},
	{"microservices", []string{"microservice"}},
	{"docker", []string{"containerization"}},
	{"kubernetes", []string{"k8s"}},
	{"helm", nil},
	{"terraform", nil},
	{"ansible", nil},
	{"aws", []string{"amazon web services"}},
	{"azure", []string{"microsoft azure"}},
	{"gcp", []string{"google cloud", "google cloud platform"}},
	{"linux", nil},
	{"git", []string{"github", "gitlab", "bitbucket"}},
	{"ci/cd", []string{"continuous integration", "continuous delivery", "ci cd"}},
	{"jenkins", nil},
	{"prometheus", nil},
	{"grafana", nil},
	{"react", []string{"reactjs", "react.js"}},
	{"angular", nil},
	{"vue", []string{"vue.js", "vuejs"}},
	{"node.js", []string{"nodejs", "node js"}},
	{"next.js", []string{"nextjs"}},
	{"html", nil},
	{"css", nil},
	{"machine learning", []string{"ml"}},
	{"deep learning", nil},
	{"pytorch", nil},
	{"tensorflow", nil},
	{"pandas", nil},
	{"spark", []string{"apache spark", "pyspark"}},
	{"airflow", nil},
	{"tableau", nil},
	{"power bi", nil},
	{"excel", nil},
	{"figma", nil},
	{"jira", nil},
	{"agile", []string{"scrum", "kanban"}},
	{"test automation", []string{"automated testing", "automation framework", "automated test"}},
	{"qa testing", []string{"quality assurance", "quality engineering", "sdet"}},
	{"manual testing", []string{"manual test", "test cases", "test plans"}},
	{"api testing", []string{"api test", "postman", "rest assured"}},
	{"selenium", nil},
	{"cypress", nil},
	{"playwright", nil},
	{"appium", nil},
	{"bdd", []string{"cucumber", "gherkin", "behavior driven"}},
	{"salesforce", nil},
	{"sap", nil},
}

var softSkills = []string{
	"communication", "leadership", "teamwork", "problem solving",
	"critical thinking", "time management", "adaptability", "creativity",
	"collaboration", "attention to detail", "analytical thinking",
	"decision making", "conflict resolution", "negotiation", "presentation",
	"mentoring", "coaching", "strategic thinking", "stakeholder management",
	"cross-functional", "cross functional", "client management", "vendor management",
	"self-motivated", "detail-oriented", "fast learner", "multitasking",
	"requirements management", "project management", "change management",
	"risk management", "team coordination", "technical documentation", "reporting",
}

// stopWords are skipped when ranking JD content words for the density report.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		about above after again against also among because been before being below between both
		could does doing during each from further have having here into itself just more most
		must other over same should some such than that their theirs them then there these they
		this those through under until very what when where which while will with within without
		would your yours able ability experience years team project skills candidate work role
		position company please required preferred using description responsibilities duties
		following strong including include includes across like well make ensure based need
		join looking opportunity environment knowledge understanding plus bonus nice`) {
		stopWords[w] = struct{}{}
	}
}

var (
	aliasIndex = map[string]string{}
	softIndex  = map[string]struct{}{}
)

func init() {
	for _, e := range hardSkills {
		aliasIndex[e.name] = e.name
		for _, a := range e.aliases {
			aliasIndex[a] = e.name
		}
	}
	for _, s := range softSkills {
		softIndex[s] = struct{}{}
	}
}

// Canonical lowercases a skill name and maps known synonyms to their canonical
// form, so "Golang" and "k8s" become "go" and "kubernetes".
func Canonical(name string) string {
	name = strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if canonical, ok := aliasIndex[name]; ok {
		return canonical
	}
	return name
}

// Forms returns the canonical name followed by its known aliases.
func Forms(name string) []string {
	canonical := Canonical(name)
	for _, e := range hardSkills {
		if e.name == canonical {
			return append([]string{e.name}, e.aliases...)
		}
	}
	return []string{canonical}
}

// CategoryOf reports whether a canonical skill is soft or hard.
func CategoryOf(name string) string {
	if _, ok := softIndex[name]; ok {
		return CategorySoft
	}
	return CategoryHard
}
