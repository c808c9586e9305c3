// Package language names the languages the OCR and translation pipeline understands.
package language

import (
	"strings"

	xlang "golang.org/x/text/language"
)

// Code is a tesseract-style ISO 639-2/3 language code.
type Code string

const (
	Nepali  Code = "nep"
	Sinhala Code = "sin"
	English Code = "eng"
	Unknown Code = ""
)

// Default is used when detection produces nothing.
const Default = Nepali

// Supported lists the low-resource languages the pipeline targets, in detection priority order.
var Supported = []Code{Nepali, Sinhala}

var names = map[Code]string{
	Nepali:  "nepali",
	Sinhala: "sinhala",
	English: "english",
}

// aliases resolve names and codes that are not plain ISO 639.
var aliases = map[string]Code{
	"nepali":    Nepali,
	"sinhala":   Sinhala,
	"sinhalese": Sinhala,
	"english":   English,

	// Hindi shares the Devanagari script; the speech model reports it for Nepali audio.
	"hin":   Nepali,
	"hindi": Nepali,
}

// Name returns the human readable name, or the code itself.
func (c Code) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}

func (c Code) String() string { return string(c) }

// IsLowResource reports whether c is one of the targeted low-resource languages.
func (c Code) IsLowResource() bool {
	return c == Nepali || c == Sinhala
}

// Secondary returns the other low-resource language for a low-resource code.
func (c Code) Secondary() (Code, bool) {
	switch c {
	case Nepali:
		return Sinhala, true
	case Sinhala:
		return Nepali, true
	}
	return Unknown, false
}

// Normalize maps names, two-letter and three-letter codes to a Code. Unrecognized input yields Unknown.
func Normalize(s string) Code {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Unknown
	}
	if c, ok := aliases[s]; ok {
		return c
	}
	tag, err := xlang.Parse(s)
	if err != nil {
		return Unknown
	}
	base, conf := tag.Base()
	if conf == xlang.No {
		return Unknown
	}
	iso3 := base.ISO3()
	if c, ok := aliases[iso3]; ok {
		return c
	}
	return Code(iso3)
}

// OrDefault returns Default for Unknown.
func (c Code) OrDefault() Code {
	if c == Unknown {
		return Default
	}
	return c
}
