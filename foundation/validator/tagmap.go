package validator

// TagMap maps validation tags to the reason codes used in field violations.
var TagMap = map[string]string{
	"required":     "required",
	"omitempty":    "optional",
	"max":          "too_long",
	"min":          "too_short",
	"len":          "invalid_length",
	"oneof":        "invalid_choice",
	"alpha":        "only_letters_allowed",
	"alphanum":     "only_letters_and_digits_allowed",
	"numeric":      "only_numbers_allowed",
	TagIBAN:        "invalid_iban",
	TagIBANCountry: "unsupported_iban_country",
}

func mapTagToCode(tag string) string {
	if code, ok := TagMap[tag]; ok {
		return code
	}
	return "invalid"
}
