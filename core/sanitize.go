package core

import (
	"github.com/SamuelRCrider/amendment13-go/utils"
)

// identifyingFields lists answer keys that directly identify the organization
// or a contact person. They are removed before answers are embedded in output.
var identifyingFields = []string{
	"organization_name",
	"contact_details",
	"contact_name",
	"contact_email",
	"contact_phone",
	"company_id",
}

// IdentifyingFields returns a copy of the answer keys always removed by
// SanitizeAnswers
func IdentifyingFields() []string {
	return append([]string(nil), identifyingFields...)
}

// SanitizeAnswers returns a shallow copy of answers without the identifying
// fields and without any of the extra fields. The input is left untouched.
func SanitizeAnswers(answers Answers, extra ...string) map[string]interface{} {
	clean := utils.CopyMap(answers)
	for _, key := range identifyingFields {
		delete(clean, key)
	}
	for _, key := range extra {
		delete(clean, key)
	}
	return clean
}
