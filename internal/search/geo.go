package search

import (
	"sort"

	"listings-search/internal/lexicon"
)

func compileGeoIndex(lex *lexicon.Lexicon) (cities, states []string) {
	cities = make([]string, 0, len(lex.CityToState))
	for city := range lex.CityToState {
		cities = append(cities, city)
	}
	sort.Slice(cities, func(i, j int) bool {
		if len(cities[i]) != len(cities[j]) {
			return len(cities[i]) > len(cities[j])
		}
		return cities[i] < cities[j]
	})

	states = make([]string, len(lex.States))
	copy(states, lex.States)
	sort.Slice(states, func(i, j int) bool { return len(states[i]) > len(states[j]) })
	return cities, states
}

// ExtractGeo resolves at most one city and one state from normalized text.
// Cities win over bare state names; a city hit always carries its state from
// the gazetteer ("lekki" resolves to city lekki, state lagos).
func (p *Parser) ExtractGeo(text string) GeoMatch {
	for _, city := range p.cities {
		if containsWord(text, city) {
			return GeoMatch{City: city, State: p.lex.CityToState[city]}
		}
	}
	for _, state := range p.states {
		if containsWord(text, state) {
			return GeoMatch{State: state}
		}
	}
	return GeoMatch{}
}
