package ai

import "fmt"

func languageName(lang string) string {
	if lang == "zh" {
		return "Chinese"
	}
	return "English"
}

// detailsPrompt asks for the enrichment record of a single event as a JSON
// object with exactly the two required string fields.
func detailsPrompt(title, lang string) string {
	return fmt.Sprintf(`You are a history expert providing data for an interactive timeline. The user is asking about the event: %q. Your response must be in %s. Based on web search results, provide: 1. "summary": A concise, engaging summary of about 50-70 words. 2. "image_query": A simple, effective 2-3 word English keyword phrase for an image search API (e.g., "ancient rome colosseum", "ming dynasty ship"). Respond ONLY with a valid JSON object like this: {"summary": "...", "image_query": "..."}.`, title, languageName(lang))
}

// chatSystemPrompt frames the per-event conversation.
func chatSystemPrompt(eventTitle, lang string) string {
	return fmt.Sprintf("You are a helpful and knowledgeable history expert. The user is asking about %q. Keep your answers concise and engaging. Respond in %s.", eventTitle, languageName(lang))
}

// generatePrompt asks for a batch of new events as a JSON array.
func generatePrompt(userPrompt, lang string) string {
	return fmt.Sprintf(`You are a data generation assistant for a history timeline application. Using web search to ensure factual accuracy, generate a list of 5 to 10 significant historical events about: %q. Your response must be in %s. Your response must be ONLY a valid JSON array. Each object in the array must have these exact keys: "year" (number), "track" (string, either "China" or "World"), "title" (string, English title), "title_zh" (string, Chinese title), and "tags" (array of 2-4 relevant string tags). Example: [{"year": 1969, "track": "World", "title": "Apollo 11 Moon Landing", "title_zh": "阿波罗11号登月", "tags": ["space", "technology", "cold war"]}]`, userPrompt, languageName(lang))
}
