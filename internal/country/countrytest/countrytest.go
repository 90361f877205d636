// Package countrytest provides a small fixed dataset for tests.
package countrytest

import (
	"encoding/json"

	"github.com/rshade/countrydex/internal/country"
)

// JSON is the fixture in the wire format served by the dataset endpoint.
// Spain lists "AND", which is deliberately absent.
const JSON = `[
  {"name":"France","nativeName":"France","population":66710000,"region":"Europe","subregion":"Western Europe",
   "capital":"Paris","flag":"https://flags.example/fra.svg","topLevelDomain":[".fr"],
   "currencies":[{"code":"EUR","name":"Euro","symbol":"€"}],"languages":[{"name":"French","nativeName":"français"}],
   "borders":["DEU","ESP"],"alpha3Code":"FRA"},
  {"name":"Germany","nativeName":"Deutschland","population":81770900,"region":"Europe","subregion":"Western Europe",
   "capital":"Berlin","flag":"https://flags.example/deu.svg","topLevelDomain":[".de"],
   "currencies":[{"code":"EUR","name":"Euro","symbol":"€"}],"languages":[{"name":"German","nativeName":"Deutsch"}],
   "borders":["FRA"],"alpha3Code":"DEU"},
  {"name":"Spain","nativeName":"España","population":46438422,"region":"Europe","subregion":"Southern Europe",
   "capital":"Madrid","flag":"https://flags.example/esp.svg","topLevelDomain":[".es"],
   "currencies":[{"code":"EUR","name":"Euro","symbol":"€"}],
   "languages":[{"name":"Spanish","nativeName":"Español"},{"name":"Catalan","nativeName":"català"}],
   "borders":["FRA","AND"],"alpha3Code":"ESP"},
  {"name":"South Africa","nativeName":"South Africa","population":55653654,"region":"Africa","subregion":"Southern Africa",
   "capital":"Pretoria","flag":"https://flags.example/zaf.svg","topLevelDomain":[".za"],
   "currencies":[{"code":"ZAR","name":"South African rand","symbol":"R"}],
   "languages":[{"name":"Afrikaans"},{"name":"English"}],
   "borders":[],"alpha3Code":"ZAF"},
  {"name":"United States of America","nativeName":"United States","population":323947000,"region":"Americas",
   "subregion":"Northern America","capital":"Washington, D.C.","flag":"https://flags.example/usa.svg",
   "topLevelDomain":[".us"],"currencies":[{"code":"USD","name":"United States dollar","symbol":"$"}],
   "languages":[{"name":"English"}],"borders":[],"alpha3Code":"USA"},
  {"name":"Heard Island and McDonald Islands","nativeName":"Heard Island and McDonald Islands","population":0,
   "region":"","subregion":"","capital":"","flags":{"svg":"https://flags.example/hmd.svg"},
   "topLevelDomain":[".hm",".aq"],"currencies":[{"name":"Australian dollar"}],"languages":[{"name":"English"}],
   "borders":[],"alpha3Code":"HMD"}
]`

// Countries decodes JSON. It panics on malformed fixture data.
func Countries() []country.Country {
	var out []country.Country
	if err := json.Unmarshal([]byte(JSON), &out); err != nil {
		panic(err)
	}
	return out
}

// Catalog returns a catalog over Countries.
func Catalog() *country.Catalog {
	return country.NewCatalog(Countries())
}
