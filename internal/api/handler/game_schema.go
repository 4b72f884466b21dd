package handler

import "time"

type gameRequest struct {
	Name        string    `json:"name"         validate:"required"`
	ReleaseDate time.Time `json:"release_date" validate:"omitempty,lte"`
	DevelopedBy string    `json:"developed_by"`
	Genre       string    `json:"genre"        validate:"omitempty,oneof=HORROR ACTION PLATFORM RPG STRATEGY RACING SANDBOX ADVENTURE"`
}
