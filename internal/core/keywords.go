package core

import "strings"

// CategoryKeywords maps one category to its trigger substrings.
type CategoryKeywords struct {
	Name     string
	Keywords []string
}

// Categories is the fixed classification table. Order matters:
// classification is first-match-wins across both category order and
// keyword order, so the table is a slice rather than a map.
// Read-only at runtime.
var Categories = []CategoryKeywords{
	{Name: "еда", Keywords: []string{"кофе", "обед", "ужин", "завтрак", "перекус", "бургер", "пицца"}},
	{Name: "топливо", Keywords: []string{"заправка", "бензин", "газ", "дизель"}},
	{Name: "транспорт", Keywords: []string{"такси", "автобус", "метро", "маршрутка", "транспорт"}},
	{Name: "развлечения", Keywords: []string{"кино", "театр", "игра", "подписка", "музыка"}},
	{Name: "Сигареты", Keywords: []string{"стики", "сиги", "сигареты", "сижки", "курево"}},
}

// CategoryNames returns the table's category names in iteration order.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, c.Name)
	}
	return names
}

// DetectKeywordCategory returns the first category with any keyword
// contained in the lower-cased text. No scoring, no longest-match
// preference.
func DetectKeywordCategory(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Name, true
			}
		}
	}
	return "", false
}

// KnownCategory matches name (trimmed, case-insensitive) against the
// table and returns the canonical spelling.
func KnownCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c.Name, name) {
			return c.Name, true
		}
	}
	return "", false
}
