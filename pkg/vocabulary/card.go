// Package vocabulary holds the personal/common word model: a shared pool of
// common words every user trains on, plus per-user associations to any word
// in the pool.
package vocabulary

// WordCard is a word joined with its translation.
type WordCard struct {
	ID       uint
	Russian  string
	English  string
	IsCommon bool
}

// Pair is a (Russian, English) pair as typed by a user or listed in a seed.
type Pair struct {
	Russian string
	English string
}

// CommonSet is seeded once into an empty store and shared by all users.
var CommonSet = []Pair{
	{"Красный", "Red"},
	{"Синий", "Blue"},
	{"Зеленый", "Green"},
	{"Я", "I"},
	{"Ты", "You"},
	{"Он", "He"},
	{"Она", "She"},
	{"Мы", "We"},
	{"Они", "They"},
	{"Собака", "Dog"},
}

// AddResult reports the outcome of AddPersonalWord. Count is the number of
// personal words the user has after the call.
type AddResult struct {
	Added bool
	Count int
}
