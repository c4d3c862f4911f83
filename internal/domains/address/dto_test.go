package address

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goiashop-bff/internal/cep"
)

func validForm() Form {
	return Form{
		PostalCode:   "01001-000",
		Street:       "Praça da Sé",
		Number:       "100",
		Complement:   "apto 42",
		Neighborhood: "Sé",
		City:         "São Paulo",
		State:        "SP",
		Nickname:     "Casa",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	form := validForm()
	form.Normalize()
	assert.NoError(t, form.Validate())
}

func TestValidateRejectsShortPostalCode(t *testing.T) {
	form := validForm()
	form.PostalCode = "1234"
	form.Normalize()

	err := form.Validate()
	require.Error(t, err)

	var fields validation.Errors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "postal_code")
	assert.Len(t, fields, 1, "only the postal code is wrong")
}

func TestValidateRequiresEveryMandatoryField(t *testing.T) {
	form := Form{PostalCode: "01001-000"}
	form.Normalize()

	err := form.Validate()
	require.Error(t, err)

	var fields validation.Errors
	require.ErrorAs(t, err, &fields)
	for _, field := range []string{"street", "number", "neighborhood", "city", "state", "nickname"} {
		assert.Contains(t, fields, field)
	}
	assert.NotContains(t, fields, "complement", "complement is optional")
}

func TestNormalizeMasksAndTrims(t *testing.T) {
	form := Form{
		PostalCode: "01001000",
		Street:     "  Praça da Sé  ",
		State:      "sp",
	}
	form.Normalize()

	assert.Equal(t, "01001-000", form.PostalCode)
	assert.Equal(t, "Praça da Sé", form.Street)
	assert.Equal(t, "SP", form.State)
}

func TestFormatPostalCode(t *testing.T) {
	assert.Equal(t, "01001-000", FormatPostalCode("01001000"))
	assert.Equal(t, "01001-000", FormatPostalCode("01001-000"))
	assert.Equal(t, "0100", FormatPostalCode(" 0100 "), "partial input stays as typed")
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "SP", NormalizeState("sp"))
	assert.Equal(t, "RJ", NormalizeState(" rj "))
	assert.Equal(t, "MG", NormalizeState("mg9"))
	assert.Equal(t, "R", NormalizeState("r"))
}

func TestApplyLookupPreservesComplementAndNumber(t *testing.T) {
	form := validForm()
	form.ApplyLookup(&cep.Result{
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "sp",
	})

	assert.Equal(t, "Avenida Paulista", form.Street)
	assert.Equal(t, "Bela Vista", form.Neighborhood)
	assert.Equal(t, "SP", form.State)
	assert.Equal(t, "apto 42", form.Complement, "lookup never overwrites the complement")
	assert.Equal(t, "100", form.Number, "lookup never overwrites the number")
}

func TestApplyLookupNilIsNoop(t *testing.T) {
	form := validForm()
	before := form
	form.ApplyLookup(nil)
	assert.Equal(t, before, form)
}

func TestPayloadCarriesBareDigits(t *testing.T) {
	form := validForm()
	form.Normalize()
	payload := form.Payload()
	assert.Equal(t, "01001000", payload.PostalCode, "the mask is display-only")
}
