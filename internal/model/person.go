package model

// Person is someone who takes part in movie nights.  Identity is
// immutable and nothing beyond the name is stored.
type Person struct {
	ID   string // persons.id
	Name string // persons.name
}
