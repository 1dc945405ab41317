package models

import "strings"

// Gender is stored upper-case, the way the mobile client sends it.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderAny    Gender = "ANY"
)

// ParseGender normalises a client value. Empty or unknown values mean ANY.
func ParseGender(s string) Gender {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderAny
	}
}

func (g Gender) String() string {
	return string(g)
}
