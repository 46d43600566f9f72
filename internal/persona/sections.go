package persona

// canonicalSections is the fixed set of top-level sections the model is
// asked to produce, in report display order. The parser's degraded
// fallback and the renderer both enumerate this list regardless of what
// the model actually returned.
var canonicalSections = []struct {
	Key   string
	Title string
}{
	{"demographics", "DEMOGRAPHICS"},
	{"personality_traits", "PERSONALITY TRAITS"},
	{"interests_and_hobbies", "INTERESTS AND HOBBIES"},
	{"values_and_beliefs", "VALUES AND BELIEFS"},
	{"behavioral_patterns", "BEHAVIORAL PATTERNS"},
	{"technology_usage", "TECHNOLOGY USAGE"},
	{"social_behavior", "SOCIAL BEHAVIOR"},
	{"professional_interests", "PROFESSIONAL/CAREER INTERESTS"},
	{"lifestyle_preferences", "LIFESTYLE PREFERENCES"},
	{"communication_patterns", "COMMUNICATION PATTERNS"},
}

// SectionKeys returns the canonical section keys in display order.
func SectionKeys() []string {
	keys := make([]string, len(canonicalSections))
	for i, s := range canonicalSections {
		keys[i] = s.Key
	}
	return keys
}
