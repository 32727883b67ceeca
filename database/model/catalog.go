package model

// Category groups titles by kind of work (film, book, ...).
type Category struct {
	Id   int    `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null;index"`
	Slug string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
}

// Genre is attached to titles many-to-many through GenreTitle.
type Genre struct {
	Id   int    `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null;index"`
	Slug string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
}

// Title is the reviewable work. CategoryId is nullable: deleting a
// category detaches its titles instead of cascading.
type Title struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:256;not null;index"`
	Year        int       `json:"year" gorm:"not null"`
	Description *string   `json:"description"`
	CategoryId  *int      `json:"-"`
	Category    *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre" gorm:"many2many:genre_titles"`
}

// GenreTitle is the join row between titles and genres. Rows go away with
// either side.
type GenreTitle struct {
	TitleId int   `gorm:"primaryKey"`
	GenreId int   `gorm:"primaryKey"`
	Title   Title `gorm:"constraint:OnDelete:CASCADE"`
	Genre   Genre `gorm:"constraint:OnDelete:CASCADE"`
}
