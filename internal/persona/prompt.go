package persona

import "fmt"

// SystemPrompt is the fixed system instruction for persona analysis.
const SystemPrompt = "You are an expert psychologist and data analyst specializing in creating detailed user personas from social media content. Analyze the provided Reddit posts and comments to create a comprehensive user persona."

// promptTemplate declares the requested response shape once; it is never
// negotiated with the model.
const promptTemplate = `Analyze the following Reddit posts and comments from user '%s' and create a detailed user persona.

CONTENT STATISTICS:
- Total Posts: %d
- Total Comments: %d

CONTENT TO ANALYZE:
%s

Please provide a comprehensive user persona analysis in JSON format with the following sections:

{
  "demographics": {
    "age_range": "estimated age range with confidence level",
    "gender": "estimated gender with confidence level",
    "location": "estimated location/region with confidence level",
    "education": "estimated education level with confidence level"
  },
  "personality_traits": {
    "openness": "level and evidence",
    "conscientiousness": "level and evidence",
    "extraversion": "level and evidence",
    "agreeableness": "level and evidence",
    "neuroticism": "level and evidence",
    "communication_style": "description of how they communicate"
  },
  "interests_and_hobbies": {
    "primary_interests": ["list of main interests"],
    "hobbies": ["list of hobbies"],
    "entertainment": ["preferred entertainment types"],
    "sports": ["sports interests if any"]
  },
  "values_and_beliefs": {
    "core_values": ["list of core values"],
    "political_leanings": "political orientation with confidence level",
    "social_causes": ["causes they care about"],
    "life_philosophy": "their general life philosophy"
  },
  "behavioral_patterns": {
    "posting_frequency": "how often they post",
    "engagement_style": "how they engage with others",
    "content_preferences": "what type of content they prefer",
    "reaction_patterns": "how they typically react to things"
  },
  "technology_usage": {
    "platform_activity": "how they use Reddit",
    "digital_literacy": "their tech comfort level",
    "online_behavior": "their general online behavior patterns"
  },
  "social_behavior": {
    "social_interaction": "how they interact socially",
    "community_involvement": "their involvement in communities",
    "leadership_qualities": "any leadership traits shown",
    "conflict_resolution": "how they handle conflicts"
  },
  "professional_interests": {
    "career_field": "estimated career field",
    "professional_skills": ["skills they demonstrate"],
    "work_style": "their approach to work",
    "career_goals": "any career aspirations mentioned"
  },
  "lifestyle_preferences": {
    "daily_routine": "insights into their daily life",
    "leisure_activities": ["how they spend free time"],
    "consumption_habits": "their consumption patterns",
    "health_wellness": "their approach to health and wellness"
  },
  "communication_patterns": {
    "language_style": "their writing/communication style",
    "humor_type": "their sense of humor",
    "emotional_expression": "how they express emotions",
    "persuasion_style": "how they try to persuade others"
  }
}

For each trait, provide specific evidence from their posts/comments and indicate confidence level (High/Medium/Low).`

// BuildPrompt assembles the analysis instruction for one profile.
func BuildPrompt(snapshot ProfileSnapshot, contentText string) string {
	return fmt.Sprintf(promptTemplate, snapshot.Username, snapshot.TotalPosts, snapshot.TotalComments, contentText)
}
