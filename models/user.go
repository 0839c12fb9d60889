package models

// User is a player identity. Oid is the identity key; Cards maps a room
// onto the oid of the card the user holds there.
type User struct {
	Name  string            `json:"name"`
	Oid   string            `json:"oid"`
	Cards map[string]string `json:"cards"`
}

// NewUser builds a user with the given oid and an empty card map.
func NewUser(name, oid string) *User {
	return &User{
		Name:  name,
		Oid:   oid,
		Cards: make(map[string]string),
	}
}
