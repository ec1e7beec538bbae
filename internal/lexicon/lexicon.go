// Package lexicon holds the static synonym tables and the location gazetteer
// used by the search pipeline. The tables are immutable after load.
package lexicon

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	commonerrors "listings-search/internal/common/errors"
)

// Lexicon is the full static vocabulary of the search pipeline.
type Lexicon struct {
	// PropertyTypeSynonyms maps a canonical property type to the phrases
	// that resolve to it.
	PropertyTypeSynonyms map[string][]string `json:"property_type_synonyms"`

	// NoiseTypes are canonical types too generic to constrain a query;
	// they are suppressed even when textually detected.
	NoiseTypes []string `json:"noise_types"`

	BedroomTerms    []string `json:"bedroom_terms"`
	BathroomTerms   []string `json:"bathroom_terms"`
	LivingRoomTerms []string `json:"living_room_terms"`
	KitchenTerms    []string `json:"kitchen_terms"`

	// Amenities maps a canonical amenity token to the substrings that
	// signal it.
	Amenities map[string][]string `json:"amenities"`

	// NoiseWords are filler tokens stripped before the structural-only check.
	NoiseWords []string `json:"noise_words"`

	// Slang maps local abbreviations to their expansions, applied on whole
	// words only.
	Slang map[string]string `json:"slang"`

	// CityToState is the gazetteer; keys and values are lowercase.
	CityToState map[string]string `json:"city_to_state"`

	States []string `json:"states"`

	// derived indexes, built once by finalize
	noiseTypeSet    map[string]bool
	noiseWordSet    map[string]bool
	structuralWords map[string]bool
	orderedSynonyms []SynonymEntry
}

// SynonymEntry pairs a synonym phrase with its canonical property type.
type SynonymEntry struct {
	Synonym   string
	Canonical string
}

// Default returns the built-in lexicon for the Nigerian listings market.
func Default() *Lexicon {
	lex := &Lexicon{
		PropertyTypeSynonyms: map[string][]string{
			"Apartment": {
				"apartment", "flat", "apt", "mini flat", "miniflat",
				"studio apartment", "studio",
			},
			"Self-Contain": {
				"self-con", "self con", "self contain", "self-contain",
				"selfcontain", "self contained", "single room self contain",
			},
			"Duplex": {
				"duplex", "semi-detached duplex", "semi detached duplex",
				"detached duplex", "terrace duplex", "terraced duplex",
			},
			"Bungalow": {"bungalow", "detached bungalow", "semi-detached bungalow"},
			"Terrace":  {"terrace house", "terraced house", "townhouse", "town house"},
			"Penthouse": {"penthouse", "pent house"},
			"Mansion":   {"mansion"},
			"Land":      {"land", "plot", "plots", "acres of land", "hectares of land"},
			"Commercial": {
				"commercial property", "office space", "shop", "warehouse",
				"plaza", "commercial",
			},
			// Generic matches, kept for detection but excluded from filtering
			// via NoiseTypes.
			"House":    {"house", "home"},
			"Property": {"property", "building", "real estate"},
		},
		NoiseTypes: []string{"House", "Property"},

		BedroomTerms:    []string{"bedroom", "bedrooms", "bed", "beds", "br", "bhk", "room", "rooms"},
		BathroomTerms:   []string{"bathroom", "bathrooms", "bath", "baths", "toilet", "toilets", "wc"},
		LivingRoomTerms: []string{"living room", "living rooms", "livingroom", "sitting room", "sitting rooms", "parlour", "parlor", "lounge"},
		KitchenTerms:    []string{"kitchen", "kitchens"},

		Amenities: map[string][]string{
			"pool":      {"swimming pool", "pool"},
			"parking":   {"parking", "car park", "garage"},
			"furnished": {"furnished"},
			"serviced":  {"serviced"},
			"gated":     {"gated"},
			"estate":    {"estate"},
			"security":  {"security", "cctv"},
			"borehole":  {"borehole"},
			"generator": {"generator", "standby power"},
			"balcony":   {"balcony"},
			"bq":        {"boys quarters", "boy's quarters"},
		},

		NoiseWords: []string{
			"a", "an", "the", "for", "in", "at", "on", "to", "of", "with",
			"and", "i", "me", "my", "am", "is", "want", "need", "find",
			"show", "looking", "searching", "available", "please", "around",
			"near", "within",
		},

		Slang: map[string]string{
			"ph":      "port harcourt",
			"phc":     "port harcourt",
			"apt":     "apartment",
			"selfcon": "self-con",
			"vi":      "victoria island",
			"v.i":     "victoria island",
			"vgc":     "victoria garden city",
			"gra":     "government reserved area",
			"accomm":  "accommodation",
		},

		CityToState: map[string]string{
			"lekki":                 "lagos",
			"ajah":                  "lagos",
			"ikeja":                 "lagos",
			"ikoyi":                 "lagos",
			"yaba":                  "lagos",
			"surulere":              "lagos",
			"gbagada":               "lagos",
			"magodo":                "lagos",
			"festac":                "lagos",
			"ikorodu":               "lagos",
			"victoria island":       "lagos",
			"victoria garden city":  "lagos",
			"ibeju-lekki":           "lagos",
			"badagry":               "lagos",
			"maitama":               "abuja",
			"wuse":                  "abuja",
			"garki":                 "abuja",
			"asokoro":               "abuja",
			"gwarinpa":              "abuja",
			"jabi":                  "abuja",
			"lugbe":                 "abuja",
			"kubwa":                 "abuja",
			"port harcourt":         "rivers",
			"ibadan":                "oyo",
			"abeokuta":              "ogun",
			"benin city":            "edo",
			"warri":                 "delta",
			"asaba":                 "delta",
			"enugu":                 "enugu",
			"owerri":                "imo",
			"uyo":                   "akwa ibom",
			"calabar":               "cross river",
			"kano":                  "kano",
			"kaduna":                "kaduna",
			"jos":                   "plateau",
			"ilorin":                "kwara",
			"onitsha":               "anambra",
			"awka":                  "anambra",
			"aba":                   "abia",
		},

		States: []string{
			"lagos", "abuja", "rivers", "oyo", "ogun", "edo", "delta",
			"enugu", "imo", "akwa ibom", "cross river", "kano", "kaduna",
			"plateau", "kwara", "anambra", "abia", "osun", "ondo", "ekiti",
			"bayelsa", "benue", "borno", "ebonyi", "kogi", "nasarawa",
			"niger", "sokoto", "taraba",
		},
	}

	lex.finalize()
	return lex
}

// Load reads a JSON lexicon override from path, validates it against the
// embedded schema, and merges its non-empty sections over the defaults.
func Load(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, commonerrors.NewLexiconUnreadableError(path, err)
	}

	if err := validateLexiconJSON(raw); err != nil {
		return nil, err
	}

	var overlay Lexicon
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return nil, commonerrors.NewLexiconInvalidError(err.Error())
	}

	lex := Default()
	lex.merge(&overlay)
	lex.finalize()
	return lex, nil
}

// merge replaces default sections with any section the overlay provides.
func (l *Lexicon) merge(overlay *Lexicon) {
	if len(overlay.PropertyTypeSynonyms) > 0 {
		l.PropertyTypeSynonyms = overlay.PropertyTypeSynonyms
	}
	if len(overlay.NoiseTypes) > 0 {
		l.NoiseTypes = overlay.NoiseTypes
	}
	if len(overlay.BedroomTerms) > 0 {
		l.BedroomTerms = overlay.BedroomTerms
	}
	if len(overlay.BathroomTerms) > 0 {
		l.BathroomTerms = overlay.BathroomTerms
	}
	if len(overlay.LivingRoomTerms) > 0 {
		l.LivingRoomTerms = overlay.LivingRoomTerms
	}
	if len(overlay.KitchenTerms) > 0 {
		l.KitchenTerms = overlay.KitchenTerms
	}
	if len(overlay.Amenities) > 0 {
		l.Amenities = overlay.Amenities
	}
	if len(overlay.NoiseWords) > 0 {
		l.NoiseWords = overlay.NoiseWords
	}
	if len(overlay.Slang) > 0 {
		l.Slang = overlay.Slang
	}
	if len(overlay.CityToState) > 0 {
		l.CityToState = overlay.CityToState
	}
	if len(overlay.States) > 0 {
		l.States = overlay.States
	}
}

// finalize builds the derived lookup indexes. Called once at load time; the
// lexicon is read-only afterwards.
func (l *Lexicon) finalize() {
	l.noiseTypeSet = make(map[string]bool, len(l.NoiseTypes))
	for _, t := range l.NoiseTypes {
		l.noiseTypeSet[t] = true
	}

	l.noiseWordSet = make(map[string]bool, len(l.NoiseWords))
	for _, w := range l.NoiseWords {
		l.noiseWordSet[w] = true
	}

	l.structuralWords = make(map[string]bool)
	for _, terms := range [][]string{l.BedroomTerms, l.BathroomTerms, l.LivingRoomTerms, l.KitchenTerms} {
		for _, term := range terms {
			for _, word := range strings.Fields(term) {
				l.structuralWords[word] = true
			}
		}
	}

	l.orderedSynonyms = l.orderedSynonyms[:0]
	for canonical, synonyms := range l.PropertyTypeSynonyms {
		for _, syn := range synonyms {
			l.orderedSynonyms = append(l.orderedSynonyms, SynonymEntry{Synonym: syn, Canonical: canonical})
		}
	}
	// Longest synonym first so "terrace duplex" beats "duplex"; ties broken
	// alphabetically for determinism.
	sort.Slice(l.orderedSynonyms, func(i, j int) bool {
		a, b := l.orderedSynonyms[i], l.orderedSynonyms[j]
		if len(a.Synonym) != len(b.Synonym) {
			return len(a.Synonym) > len(b.Synonym)
		}
		return a.Synonym < b.Synonym
	})
}

// IsNoiseType reports whether the canonical type must never be applied as a
// filter.
func (l *Lexicon) IsNoiseType(canonical string) bool {
	return l.noiseTypeSet[canonical]
}

// IsNoiseWord reports whether the token is a filler word.
func (l *Lexicon) IsNoiseWord(token string) bool {
	return l.noiseWordSet[token]
}

// IsStructuralWord reports whether the token appears in any structural term.
func (l *Lexicon) IsStructuralWord(token string) bool {
	return l.structuralWords[token]
}

// OrderedSynonyms returns all property-type synonyms, longest first.
func (l *Lexicon) OrderedSynonyms() []SynonymEntry {
	return l.orderedSynonyms
}

// SynonymsFor returns the synonym phrases of a canonical type, or nil.
func (l *Lexicon) SynonymsFor(canonical string) []string {
	return l.PropertyTypeSynonyms[canonical]
}
