package utils

import "golang.org/x/crypto/bcrypt"

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// RosterPassword derives the initial password for a roster-imported account:
// first four characters of the name followed by the last two of the roll
// number.
func RosterPassword(name, rollNumber string) string {
	namePart := name
	if len(namePart) > 4 {
		namePart = namePart[:4]
	}
	rollPart := rollNumber
	if len(rollPart) > 2 {
		rollPart = rollPart[len(rollPart)-2:]
	}
	return namePart + rollPart
}
