package movie

import (
	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       Genre     `json:"genre"`
	Director    Director  `json:"director"`
	Actors      []string  `json:"actors"`
	ImagePath   string    `json:"image_path,omitempty"`
	Featured    bool      `json:"featured"`
}

type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}
