/*
intent classifies the latest chat utterance into one of a few canned
phrasings which can be answered without a model call.
*/
package intent

import (
	"regexp"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Kind is the classification of an utterance
type Kind int

// Intent is the result of classifying an utterance. Name, State and Country
// are set for Add and Delete; only Name is set for WeatherQuery.
type Intent struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	None Kind = iota
	Add
	Delete
	WeatherQuery
)

var (
	reAdd     = regexp.MustCompile(`(?i)^\s*(add\s+city|add)\s*[:\-]?\s*`)
	reDelete  = regexp.MustCompile(`(?i)^\s*(delete\s+city|delete|remove)\s*[:\-]?\s*`)
	reWeather = regexp.MustCompile(`(?i)\b(weather\s+for|show\s+weather\s+for|forecast\s+for)\s+(.+)`)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Detect classifies text. Rules are tried in order: add, delete, weather
// lookup. A rule whose prefix matches but which yields no name falls
// through to the next rule.
func Detect(text string) Intent {
	if name, state, ok := nameState(reAdd, text); ok {
		return Intent{Kind: Add, Name: name, State: state, Country: schema.DefaultCountry}
	}
	if name, state, ok := nameState(reDelete, text); ok {
		return Intent{Kind: Delete, Name: name, State: state, Country: schema.DefaultCountry}
	}
	if match := reWeather.FindStringSubmatch(strings.TrimSpace(text)); match != nil {
		name, _, _ := strings.Cut(match[2], ",")
		if name = strings.TrimSpace(name); name != "" {
			return Intent{Kind: WeatherQuery, Name: name}
		}
	}
	return Intent{Kind: None}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Delete:
		return "delete"
	case WeatherQuery:
		return "weather_query_name"
	default:
		return "none"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (i Intent) String() string {
	return types.Stringify(i)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// nameState strips the prefix matched by re and returns the first two
// non-empty comma-separated fields of the remainder
func nameState(re *regexp.Regexp, text string) (string, string, bool) {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}
	var fields []string
	for _, field := range strings.Split(text[loc[1]:], ",") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	switch len(fields) {
	case 0:
		return "", "", false
	case 1:
		return fields[0], "", true
	default:
		return fields[0], fields[1], true
	}
}
