package core

// Member represents a member of the fixed member pool.
type Member struct {
	ID   MemberIDString
	Name string
}
