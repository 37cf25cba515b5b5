package service

// Abbreviation expansions applied token-by-token after punctuation is
// stripped, so "J." and "j" both land on "journal". Keys must be lowercase
// and values must not themselves be keys, otherwise Normalize would not be
// idempotent. Ambiguous tokens ("nat" can be nature or natural) are left out.
var abbrev = map[string]string{
	"acad":    "academy",
	"adv":     "advances",
	"am":      "american",
	"amer":    "american",
	"ann":     "annals",
	"appl":    "applied",
	"biol":    "biological",
	"br":      "british",
	"chem":    "chemical",
	"clin":    "clinical",
	"commun":  "communications",
	"eng":     "engineering",
	"environ": "environmental",
	"eur":     "european",
	"int":     "international",
	"intl":    "international",
	"j":       "journal",
	"jnl":     "journal",
	"jour":    "journal",
	"lett":    "letters",
	"med":     "medical",
	"natl":    "national",
	"nutr":    "nutrition",
	"phys":    "physical",
	"proc":    "proceedings",
	"res":     "research",
	"rev":     "review",
	"sci":     "science",
	"soc":     "society",
	"technol": "technology",
}
