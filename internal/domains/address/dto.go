package address

import (
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"goiashop-bff/internal/cep"
)

var postalCodeDigits = regexp.MustCompile(`^[0-9]{8}$`)
var stateCode = regexp.MustCompile(`^[A-Z]{2}$`)

// Form is the transient draft behind one add/edit address dialog. It is
// discarded on cancel and merged into the collection on a confirmed,
// validated save - a rejected form never reaches the gateway.
type Form struct {
	PostalCode   string `json:"postal_code" binding:"required"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Nickname     string `json:"nickname"`
	IsDefault    bool   `json:"is_default"`
}

// Normalize applies the input-time formatting the dialog shows as the
// user types: digits-only postal code re-masked, state uppercased and
// truncated to 2 characters, surrounding whitespace dropped.
func (f *Form) Normalize() {
	f.PostalCode = FormatPostalCode(f.PostalCode)
	f.State = NormalizeState(f.State)
	f.Street = strings.TrimSpace(f.Street)
	f.Number = strings.TrimSpace(f.Number)
	f.Complement = strings.TrimSpace(f.Complement)
	f.Neighborhood = strings.TrimSpace(f.Neighborhood)
	f.City = strings.TrimSpace(f.City)
	f.Nickname = strings.TrimSpace(f.Nickname)
}

// Validate runs the submit-time rule set. Any failure blocks the save
// call entirely - no partial submission.
func (f Form) Validate() error {
	digits := cep.Normalize(f.PostalCode)
	return validation.Errors{
		"postal_code": validation.Validate(digits,
			validation.Required.Error("postal code is required"),
			validation.Match(postalCodeDigits).Error("postal code must have exactly 8 digits"),
		),
		"street": validation.Validate(f.Street,
			validation.Required.Error("street is required"),
			validation.Length(1, 200),
		),
		"number": validation.Validate(f.Number,
			validation.Required.Error("number is required"),
			validation.Length(1, 20),
		),
		"neighborhood": validation.Validate(f.Neighborhood,
			validation.Required.Error("neighborhood is required"),
			validation.Length(1, 100),
		),
		"city": validation.Validate(f.City,
			validation.Required.Error("city is required"),
			validation.Length(1, 100),
		),
		"state": validation.Validate(f.State,
			validation.Required.Error("state is required"),
			validation.Match(stateCode).Error("state must be a 2-letter code"),
		),
		"nickname": validation.Validate(f.Nickname,
			validation.Required.Error("nickname is required"),
			validation.Length(1, 50),
		),
	}.Filter()
}

// Payload converts the validated form into the collection payload.
func (f Form) Payload() Address {
	return Address{
		PostalCode:   cep.Normalize(f.PostalCode),
		Street:       f.Street,
		Number:       f.Number,
		Complement:   f.Complement,
		Neighborhood: f.Neighborhood,
		City:         f.City,
		State:        f.State,
		Nickname:     f.Nickname,
	}
}

// ApplyLookup fills the structured fields from a postal lookup hit. The
// complement is the documented exception: the lookup never returns one,
// so whatever the user typed there survives.
func (f *Form) ApplyLookup(result *cep.Result) {
	if result == nil {
		return
	}
	f.Street = result.Street
	f.Neighborhood = result.Neighborhood
	f.City = result.City
	f.State = NormalizeState(result.State)
}

// FormatPostalCode renders the display mask: "01001000" -> "01001-000".
// Input that is not 8 digits is returned trimmed but otherwise as-is;
// the user is still typing.
func FormatPostalCode(raw string) string {
	digits := cep.Normalize(raw)
	if len(digits) != 8 {
		return strings.TrimSpace(raw)
	}
	return digits[:5] + "-" + digits[5:]
}

// NormalizeState uppercases and truncates to the 2-letter UF code.
func NormalizeState(raw string) string {
	letters := make([]rune, 0, 2)
	for _, r := range strings.TrimSpace(raw) {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 2 {
				break
			}
		}
	}
	return string(letters)
}
