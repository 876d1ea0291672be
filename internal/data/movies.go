package data

type Movie struct {
	ID          int64    `json:"id" gorm:"column:id;primaryKey"`                 // unique integer ID for the movie
	Title       *string  `json:"title" gorm:"column:title;size:255"`             // movie title
	Description *string  `json:"description" gorm:"column:description;size:255"` // short synopsis
	Trailer     *string  `json:"trailer" gorm:"column:trailer;size:255"`         // trailer URL
	Year        *int     `json:"year" gorm:"column:year"`                        // release year
	Rating      *float64 `json:"rating" gorm:"column:rating"`                    // average rating
	GenreID     *int64   `json:"genre_id" gorm:"column:genre_id"`                // genre.id, not checked for existence
	DirectorID  *int64   `json:"director_id" gorm:"column:director_id"`          // director.id, not checked for existence
}

func (m Movie) RecordID() int64 { return m.ID }

func (Movie) TableName() string { return "movie" }

func (m Movie) Fields() map[string]any {
	return map[string]any{
		"title":       m.Title,
		"description": m.Description,
		"trailer":     m.Trailer,
		"year":        m.Year,
		"rating":      m.Rating,
		"genre_id":    m.GenreID,
		"director_id": m.DirectorID,
	}
}
