package domain

import "strings"

// User is an account registered in one domain's Users service.
// UserID is stored fully qualified as "name@domain".
type User struct {
	UserID   string `json:"userId" msgpack:"userId"`
	FullName string `json:"fullName" msgpack:"fullName"`
	Email    string `json:"email" msgpack:"email"`
	Password string `json:"password" msgpack:"password"`
}

// QualifyUserID builds the fully qualified form of a local user name.
func QualifyUserID(name, domainID string) string {
	return name + "@" + domainID
}

// ExtractDomain returns the domain part of a qualified user id, or "" when
// the id carries no domain.
func ExtractDomain(userID string) string {
	idx := strings.LastIndex(userID, "@")
	if idx < 0 {
		return ""
	}
	return userID[idx+1:]
}
