// Package language normalizes user-supplied language settings for the
// transcription backends. Inputs may be ISO codes ("en", "eng", "en-US") or
// full words ("english"); outputs are ISO 639-1 two-letter codes.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supported lists the languages the recognizers are configured for; the
// matcher maps regional variants onto them.
var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Portuguese,
	language.Japanese,
	language.Korean,
	language.Chinese,
	language.Russian,
	language.Arabic,
	language.Hindi,
	language.Dutch,
	language.Polish,
	language.Swedish,
	language.Danish,
	language.Norwegian,
	language.Finnish,
}

var matcher = language.NewMatcher(supported)

// wordForms maps full language words onto codes, since language.Parse only
// accepts BCP 47 input.
var wordForms = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "japanese": "ja", "korean": "ko",
	"chinese": "zh", "russian": "ru", "arabic": "ar", "hindi": "hi",
	"dutch": "nl", "polish": "pl", "swedish": "sv", "danish": "da",
	"norwegian": "no", "finnish": "fi",
}

// ToISO2 normalizes a language identifier to its ISO 639-1 code. Returns ""
// when the input is empty or matches no supported language.
func ToISO2(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if code, ok := wordForms[value]; ok {
		value = code
	}
	tag, err := language.Parse(value)
	if err != nil {
		return ""
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return ""
	}
	base, _ := supported[index].Base()
	return base.String()
}

// DisplayName returns the English display name for a language identifier,
// or the input unchanged when it cannot be resolved.
func DisplayName(value string) string {
	code := ToISO2(value)
	if code == "" {
		return value
	}
	tag, err := language.Parse(code)
	if err != nil {
		return value
	}
	return display.English.Languages().Name(tag)
}
