package roster

import "errors"

var (
	ErrInputNotFound   = errors.New("input file not found")
	ErrInputUnreadable = errors.New("input file unreadable")
)

// NameEntry is one person to look up, parsed from a line of the name list.
type NameEntry struct {
	GivenNames string
	Surname    string
}

// Query returns the search string sent to the results portal.
func (e NameEntry) Query() string {
	return e.GivenNames + " " + e.Surname
}

func (e NameEntry) String() string {
	return e.Query()
}
