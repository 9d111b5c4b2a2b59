// model/book.go
package model

type BookStatus string

const (
	BookAvailable  BookStatus = "Available"
	BookBorrowed   BookStatus = "Borrowed"
	BookOutOfStock BookStatus = "Out of Stock"
)

type Genre string

const (
	GenreMystery    Genre = "Mystery"
	GenreScience    Genre = "Science"
	GenreFantasy    Genre = "Fantasy"
	GenreHistorical Genre = "Historical"
	GenreRomance    Genre = "Romance"
	GenreHorror     Genre = "Horror"
	GenreBusiness   Genre = "Business"
	GenreTravel     Genre = "Travel"
	GenreOther      Genre = "Other"
)

type Book struct {
	ID     int64      `json:"id"`
	Title  string     `json:"title"`
	Author string     `json:"author"`
	Genre  Genre      `json:"genre"`
	Price  int64      `json:"price"`
	Status BookStatus `json:"status"`
}
