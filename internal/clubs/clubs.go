// Package clubs holds the fixed club taxonomy participants pick from:
// a list of countries, the clubs playing in each, and display helpers.
package clubs

import "strings"

type Country struct {
	Name  string
	Flag  string
	Clubs []string
}

var catalog = []Country{
	{
		Name: "England",
		Flag: "🏴󠁧󠁢󠁥󠁮󠁧󠁿",
		Clubs: []string{
			"Newcastle United", "Tottenham Hotspur", "Chelsea", "Arsenal", "Liverpool",
			"Manchester United", "Manchester City", "Aston Villa", "Crystal Palace",
			"Brighton", "West Ham", "Nottingham Forest",
		},
	},
	{
		Name:  "Italy",
		Flag:  "🇮🇹",
		Clubs: []string{"AC Milan", "Inter Milan", "Juventus", "Napoli", "Roma", "Atalanta"},
	},
	{
		Name: "Germany",
		Flag: "🇩🇪",
		Clubs: []string{
			"Leipzig", "Bayer Leverkusen", "Borussia Dortmund", "Bayern Munich",
			"Frankfurt", "Stuttgart",
		},
	},
	{
		Name: "Spain",
		Flag: "🇪🇸",
		Clubs: []string{
			"Real Madrid", "Barcelona", "Atletico Madrid", "Athletic Bilbao", "Sevilla",
			"Real Betis", "Real Sociedad", "Girona", "Villarreal",
		},
	},
	{
		Name:  "France",
		Flag:  "🇫🇷",
		Clubs: []string{"Lyon", "Paris Saint-Germain", "Olympique de Marseille", "AS Monaco", "OGC Nice"},
	},
	{
		Name:  "Netherlands",
		Flag:  "🇳🇱",
		Clubs: []string{"Ajax", "PSV"},
	},
	{
		Name:  "Turkey",
		Flag:  "🇹🇷",
		Clubs: []string{"Galatasaray", "Fenerbahçe", "Beşiktaş"},
	},
	{
		Name:  "Portugal",
		Flag:  "🇵🇹",
		Clubs: []string{"Benfica", "Sporting"},
	},
	{
		Name:  "Saudi Arabia",
		Flag:  "🇸🇦",
		Clubs: []string{"Al Nassr", "Al Hilal", "Al Ittihad"},
	},
	{
		Name: "National teams",
		Flag: "🌍",
		Clubs: []string{
			"Spain", "Portugal", "Netherlands", "Germany", "Argentina", "France", "England",
			"Italy", "Japan", "South Korea", "Morocco", "Croatia", "Norway", "Sweden", "Denmark",
		},
	},
}

var shortNames = map[string]string{
	// England
	"Newcastle United": "NEW", "Tottenham Hotspur": "TOT", "Chelsea": "CHE",
	"Arsenal": "ARS", "Liverpool": "LIV", "Manchester United": "MUN",
	"Manchester City": "MCI", "Aston Villa": "AVL", "Crystal Palace": "CRY",
	"Brighton": "BRI", "West Ham": "WHU", "Nottingham Forest": "NFO",
	// Italy
	"AC Milan": "MIL", "Inter Milan": "INT", "Juventus": "JUV",
	"Napoli": "NAP", "Roma": "ROM", "Atalanta": "ATA",
	// Germany
	"Leipzig": "LEI", "Bayer Leverkusen": "LEV", "Borussia Dortmund": "BVB",
	"Bayern Munich": "BAY", "Frankfurt": "FRA", "Stuttgart": "STU",
	// Spain
	"Real Madrid": "RMA", "Barcelona": "BAR", "Atletico Madrid": "ATM",
	"Athletic Bilbao": "ATH", "Sevilla": "SEV", "Real Betis": "BET",
	"Real Sociedad": "RSO", "Girona": "GIR", "Villarreal": "VIL",
	// France
	"Lyon": "LYO", "Paris Saint-Germain": "PSG", "Olympique de Marseille": "MAR",
	"AS Monaco": "MON", "OGC Nice": "NIC",
	// Other
	"Ajax": "AJX", "PSV": "PSV", "Galatasaray": "GAL", "Fenerbahçe": "FEN",
	"Beşiktaş": "BES", "Benfica": "BEN", "Sporting": "SPO",
	"Al Nassr": "NAS", "Al Hilal": "HIL", "Al Ittihad": "ITT",
	// National teams
	"Spain": "ESP", "Portugal": "POR", "Netherlands": "NED", "Germany": "GER",
	"Argentina": "ARG", "France": "FRA", "England": "ENG", "Italy": "ITA",
	"Japan": "JPN", "South Korea": "KOR", "Morocco": "MAR", "Croatia": "CRO",
	"Norway": "NOR", "Sweden": "SWE", "Denmark": "DEN",
}

// Countries returns the country names in taxonomy order.
func Countries() []string {
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.Name
	}
	return names
}

// ByCountry returns the clubs of one country.
func ByCountry(country string) ([]string, bool) {
	for _, c := range catalog {
		if c.Name == country {
			return append([]string(nil), c.Clubs...), true
		}
	}
	return nil, false
}

// All returns the flat club list, countries concatenated in taxonomy order.
func All() []string {
	var all []string
	for _, c := range catalog {
		all = append(all, c.Clubs...)
	}
	return all
}

// Contains reports whether club appears anywhere in the taxonomy.
func Contains(club string) bool {
	for _, c := range catalog {
		for _, name := range c.Clubs {
			if name == club {
				return true
			}
		}
	}
	return false
}

// ShortName returns the three-letter display code for a club, falling
// back to the first three letters uppercased.
func ShortName(club string) string {
	if short, ok := shortNames[club]; ok {
		return short
	}
	runes := []rune(club)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// Flag returns the flag emoji for a country.
func Flag(country string) string {
	for _, c := range catalog {
		if c.Name == country {
			return c.Flag
		}
	}
	return "⚽"
}
