package app

import (
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"
	"time"
)

const (
	maxNameLength = 100
	maxAvatarSize = 1 << 20 // 1 MiB
	minAge        = 18
)

var namePattern = regexp.MustCompile(`^[A-Za-z]+([ '-][A-Za-z]+)*$`)

var allowedGenders = map[string]bool{
	"man":   true,
	"woman": true,
}

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// validateProfileInput runs every field check in a fixed order and returns the
// first offending field with its reason. Canonical values (gender, parsed
// birth date, trimmed info) are written back into the input. Nothing is
// uploaded or persisted before this returns clean.
func validateProfileInput(in *profileInput, avatar *multipart.FileHeader) (string, string) {
	if reason := validateName(in.FirstName); reason != "" {
		return "first_name", reason
	}
	if reason := validateName(in.LastName); reason != "" {
		return "last_name", reason
	}

	gender, reason := validateGender(in.Gender)
	if reason != "" {
		return "gender", reason
	}
	in.gender = gender

	dob, reason := validateBirthDate(in.DateOfBirth, time.Now())
	if reason != "" {
		return "date_of_birth", reason
	}
	in.dateOfBirth = dob

	info, reason := validateInfo(in.Info)
	if reason != "" {
		return "info", reason
	}
	in.info = info

	if reason := validateAvatar(avatar); reason != "" {
		return "avatar", reason
	}

	return "", ""
}

// normalizeName lower-cases a validated name for storage.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if len(name) > maxNameLength {
		return fmt.Sprintf("Name must be at most %d characters.", maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return "Name may only contain letters, spaces and hyphens."
	}
	return ""
}

func validateGender(gender string) (string, string) {
	canonical := strings.ToLower(strings.TrimSpace(gender))
	if !allowedGenders[canonical] {
		return "", "Gender must be one of: man, woman."
	}
	return canonical, ""
}

// validateBirthDate parses an ISO 8601 date and checks the calendar-accurate
// age. A request on the exact 18th birthday passes.
func validateBirthDate(value string, now time.Time) (time.Time, string) {
	dob, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, "Birth date must be a valid date in YYYY-MM-DD format."
	}

	if dob.After(now) {
		return time.Time{}, "Birth date cannot be in the future."
	}

	age := now.Year() - dob.Year()
	if int(now.Month()) < int(dob.Month()) ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < minAge {
		return time.Time{}, fmt.Sprintf("You must be at least %d years old to register a profile.", minAge)
	}

	return dob, ""
}

func validateInfo(info string) (string, string) {
	collapsed := strings.Join(strings.Fields(info), " ")
	if collapsed == "" {
		return "", "Info field cannot be empty."
	}
	return strings.TrimSpace(info), ""
}

// validateAvatar checks the declared content type and size. A missing avatar
// part is a validation failure, not a missing-parameter error.
func validateAvatar(avatar *multipart.FileHeader) string {
	if avatar == nil {
		return "Avatar image is required."
	}
	if !allowedAvatarTypes[avatar.Header.Get("Content-Type")] {
		return "Avatar must be a JPEG or PNG image."
	}
	if avatar.Size > maxAvatarSize {
		return "Avatar exceeds the maximum size of 1 MB."
	}
	return ""
}
