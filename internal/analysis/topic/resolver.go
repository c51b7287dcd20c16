// Package topic maps free-text Copilot questions to canned answers.
package topic

import (
	"strings"
)

// Reply is the assistant text plus follow-up prompts offered to the user.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
	Topic       string   `json:"topic,omitempty"`
}

// Rule binds a predicate over lowercased input to a response.
type Rule struct {
	Name     string
	Match    func(lowered string) bool
	Response string
}

// Keyword builds a rule that fires when the input contains keyword.
func Keyword(keyword, response string) Rule {
	needle := strings.ToLower(keyword)
	return Rule{
		Name:     needle,
		Match:    func(lowered string) bool { return strings.Contains(lowered, needle) },
		Response: response,
	}
}

// Resolver evaluates rules in declaration order; the first match wins.
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	rules     []Rule
	fallback  string
	followUps []string
}

// NewResolver returns a resolver over rules with the stock fallback text.
func NewResolver(rules ...Rule) *Resolver {
	return &Resolver{
		rules:     append([]Rule(nil), rules...),
		fallback:  DefaultResponse,
		followUps: FollowUpSuggestions,
	}
}

// Default returns a resolver over the stock supply-chain topics.
func Default() *Resolver {
	return NewResolver(StockRules()...)
}

// Resolve never fails: unmatched input (including empty) gets the fallback.
func (r *Resolver) Resolve(input string) Reply {
	lowered := strings.ToLower(input)

	matched, ok := r.match(lowered)
	if !ok {
		return Reply{Text: r.fallback, Suggestions: cloneStrings(r.followUps)}
	}

	return Reply{
		Text:        matched.Response,
		Suggestions: cloneStrings(r.followUps),
		Topic:       matched.Name,
	}
}

// Matches reports whether any rule fires for input.
func (r *Resolver) Matches(input string) bool {
	_, ok := r.match(strings.ToLower(input))
	return ok
}

// Rules lists rule names in evaluation order.
func (r *Resolver) Rules() []string {
	names := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return names
}

func (r *Resolver) match(lowered string) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Match != nil && rule.Match(lowered) && rule.Response != "" {
			return rule, true
		}
	}
	return Rule{}, false
}

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}
