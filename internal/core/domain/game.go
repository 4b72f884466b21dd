package domain

import "time"

// Genre values accepted for a catalog entry.
const (
	GenreHorror    = "HORROR"
	GenreAction    = "ACTION"
	GenrePlatform  = "PLATFORM"
	GenreRPG       = "RPG"
	GenreStrategy  = "STRATEGY"
	GenreRacing    = "RACING"
	GenreSandbox   = "SANDBOX"
	GenreAdventure = "ADVENTURE"
)

// Genres lists every accepted genre, in declaration order.
var Genres = []string{
	GenreHorror, GenreAction, GenrePlatform, GenreRPG,
	GenreStrategy, GenreRacing, GenreSandbox, GenreAdventure,
}

// Game is a catalog entry.
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ReleaseDate time.Time `json:"release_date"`
	DevelopedBy string    `json:"developed_by,omitempty"`
	Genre       string    `json:"genre,omitempty"`
}
