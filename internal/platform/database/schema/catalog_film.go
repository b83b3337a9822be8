package schema

// CatalogFilmTable represents the 'catalog.film' table
type CatalogFilmTable struct {
	Table           string
	ID              string
	UniversalItemID string
	TMDbID          string
	Title           string
	AltTitle        string
	Director        string
	Runtime         string
	Genres          string
	Cast            string
	Crew            string
	Blurb           string
	Synopsis        string
	Languages       string
	Countries       string
	Poster          string
	Background      string
	Budget          string
	BoxOffice       string
	ReleaseDate     string
	Homepage        string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogFilm is the schema definition for catalog.film
var CatalogFilm = CatalogFilmTable{
	Table:           "catalog.film",
	ID:              "id",
	UniversalItemID: "universalitemid",
	TMDbID:          "tmdbid",
	Title:           "title",
	AltTitle:        "alttitle",
	Director:        "director",
	Runtime:         "runtime",
	Genres:          "genres",
	Cast:            "castmembers",
	Crew:            "crewmembers",
	Blurb:           "blurb",
	Synopsis:        "synopsis",
	Languages:       "languages",
	Countries:       "countries",
	Poster:          "poster",
	Background:      "background",
	Budget:          "budget",
	BoxOffice:       "boxoffice",
	ReleaseDate:     "releasedate",
	Homepage:        "homepage",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CatalogFilmTable) Columns() []string {
	return []string{t.ID, t.UniversalItemID, t.TMDbID, t.Title, t.AltTitle, t.Director, t.Runtime, t.Genres, t.Cast, t.Crew, t.Blurb, t.Synopsis, t.Languages, t.Countries, t.Poster, t.Background, t.Budget, t.BoxOffice, t.ReleaseDate, t.Homepage, t.CreatedAt, t.UpdatedAt}
}
