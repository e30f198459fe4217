package models

// Member represents a registered participant.
type Member struct {
	// Name is the display name and identifier of the member.
	// Unique within the member set.
	Name string

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64
}

// MemberNames returns the names of members in their original order.
func MemberNames(members []Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}
