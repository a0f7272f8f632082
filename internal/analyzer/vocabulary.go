// internal/analyzer/vocabulary.go
package analyzer

// Vocabulary holds the immutable term data the analyzer matches against.
// Constructed once and injected, so tests can substitute smaller fixtures.
type Vocabulary struct {
	Skills            []string
	Normalization     map[string]string
	EducationKeywords []string
	BranchSynonyms    []BranchSynonyms
	DefaultBranch     string
	StopWords         map[string]struct{}
}

// BranchSynonyms maps a canonical branch name to the keywords that imply it.
// Order matters: the first branch with any keyword hit wins.
type BranchSynonyms struct {
	Branch   string
	Keywords []string
}

// DefaultVocabulary returns the production term set.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Skills: []string{
			// Web Development
			"javascript", "js", "typescript", "html", "html5", "css", "css3", "sass", "scss", "less",
			"react", "reactjs", "react.js", "angular", "angularjs", "vue", "vuejs", "vue.js", "svelte",
			"nodejs", "node.js", "express", "expressjs", "express.js", "nextjs", "next.js", "nuxt",
			"redux", "mobx", "vuex", "jquery", "bootstrap", "tailwind", "material-ui", "mui",
			"webpack", "vite", "babel", "gulp", "grunt", "npm", "yarn", "pnpm",

			// Backend & Languages
			"python", "java", "c++", "cpp", "c#", "csharp", "php", "ruby", "go", "golang", "rust", "swift", "kotlin",
			"django", "flask", "fastapi", "spring", "springboot", "spring boot", "laravel", "rails",

			// Databases
			"mongodb", "mongoose", "mysql", "postgresql", "postgres", "sqlite", "redis", "elasticsearch",
			"sql", "nosql", "database", "db", "firebase", "supabase",

			// Cloud & DevOps
			"aws", "amazon web services", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
			"jenkins", "ci/cd", "git", "github", "gitlab", "bitbucket", "terraform", "ansible",

			// Mobile Development
			"mobile development", "ios", "android", "flutter", "react native", "xamarin", "ionic",

			// Data & AI
			"machine learning", "ml", "ai", "artificial intelligence", "data science", "analytics", "statistics",
			"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy", "jupyter",

			// Other Tech
			"blockchain", "cryptocurrency", "web3", "solidity", "ethereum",
			"cybersecurity", "penetration testing", "ethical hacking", "security",
			"rest api", "restful", "graphql", "api", "microservices",

			// Design & Tools
			"ui/ux", "ui", "ux", "figma", "adobe", "photoshop", "illustrator", "xd", "sketch",

			// Soft Skills
			"project management", "agile", "scrum", "kanban", "jira",
			"communication", "leadership", "teamwork", "problem solving",
		},

		// Many-to-one mapping of raw mentions to canonical skill names.
		// Terms absent here fall back to title-casing.
		Normalization: map[string]string{
			"js":         "JavaScript",
			"javascript": "JavaScript",
			"react.js":   "React",
			"reactjs":    "React",
			"node.js":    "Node.js",
			"nodejs":     "Node.js",
			"express.js": "Express",
			"expressjs":  "Express",
			"vue.js":     "Vue",
			"vuejs":      "Vue",
			"angular.js": "Angular",
			"angularjs":  "Angular",
			"typescript": "TypeScript",
			"html5":      "HTML5",
			"css3":       "CSS3",
			"mongodb":    "MongoDB",
			"mysql":      "MySQL",
			"postgresql": "PostgreSQL",
			"postgres":   "PostgreSQL",
			"python":     "Python",
			"java":       "Java",
			"c++":        "C++",
			"cpp":        "C++",
			"c#":         "C#",
			"csharp":     "C#",
			"sql":        "SQL",
			"rest api":   "REST API",
			"restful":    "RESTful API",
			"graphql":    "GraphQL",
			"docker":     "Docker",
			"kubernetes": "Kubernetes",
			"k8s":        "Kubernetes",
			"aws":        "AWS",
			"git":        "Git",
			"github":     "GitHub",
		},

		EducationKeywords: []string{
			"bachelor", "master", "phd", "degree", "diploma", "certificate",
			"university", "college", "institute", "school", "academy",
			"computer science", "engineering", "information technology",
			"business", "management", "economics", "mathematics", "statistics",
		},

		BranchSynonyms: []BranchSynonyms{
			{Branch: "computer science", Keywords: []string{"cs", "computer science", "cse", "computer engineering"}},
			{Branch: "information technology", Keywords: []string{"it", "information technology", "information systems"}},
			{Branch: "electronics", Keywords: []string{"ece", "electronics", "electrical", "electronics and communication"}},
			{Branch: "mechanical", Keywords: []string{"me", "mechanical", "mechanical engineering"}},
			{Branch: "civil", Keywords: []string{"ce", "civil", "civil engineering"}},
			{Branch: "business", Keywords: []string{"bba", "mba", "business", "management", "commerce"}},
			{Branch: "data science", Keywords: []string{"data science", "analytics", "statistics", "mathematics"}},
		},
		DefaultBranch: "computer science",

		StopWords: buildStopWords(),
	}
}

func buildStopWords() map[string]struct{} {
	words := []string{
		"about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
		"another", "any", "are", "as", "at", "be", "because", "been", "before", "being",
		"below", "between", "both", "but", "by", "came", "can", "cannot", "come", "could",
		"did", "do", "does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "get", "got", "had", "has", "have", "having", "he", "her", "here",
		"herself", "him", "himself", "his", "how", "if", "in", "into", "is", "it", "its",
		"itself", "just", "like", "make", "many", "me", "might", "more", "most", "much",
		"must", "my", "myself", "never", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "ourselves", "out", "over", "own", "said", "same", "see",
		"should", "since", "so", "some", "still", "such", "take", "than", "that", "the",
		"their", "theirs", "them", "themselves", "then", "there", "these", "they", "this",
		"those", "through", "to", "too", "under", "until", "up", "very", "was", "way",
		"we", "well", "were", "what", "when", "where", "which", "while", "who", "whom",
		"why", "will", "with", "would", "you", "your", "yours", "yourself", "yourselves",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
