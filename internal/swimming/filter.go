package swimming

// FilterByClub returns the people whose club abbreviation equals club exactly,
// in their original order.
func FilterByClub(people []Person, club string) []Person {
	matches := make([]Person, 0)
	for _, p := range people {
		if p.ClubAbbrev == club {
			matches = append(matches, p)
		}
	}
	return matches
}
