package swimming

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedStatus is returned when the portal answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrDecode is returned when the response body is not a person list.
	ErrDecode = errors.New("failed to decode response")
	// ErrMissingField marks a person record lacking a field needed for output.
	ErrMissingField = errors.New("missing required field")
)

// Person is a single item of the portal's person search result. Fields not
// listed here are ignored.
type Person struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	UserID     UserID `json:"userId"`
	ClubAbbrev string `json:"clubAbbrev"`
}

// FullName returns "<first> <last>" as written to the member list.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Validate checks that the fields written to the member list are present.
// Absent, null and empty values all count as missing.
func (p Person) Validate() error {
	var missing []string
	if p.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if p.LastName == "" {
		missing = append(missing, "lastName")
	}
	if p.UserID == "" {
		missing = append(missing, "userId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// UserID is the portal's person identifier. The portal may send it as a JSON
// string or number; both are kept in textual form.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("userId must be a string or number: %w", err)
	}
	*u = UserID(n.String())
	return nil
}

func (u UserID) String() string {
	return string(u)
}
