package service

import (
	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

// TitleService backs the title CRUD. Reads carry nested category/genre
// objects and the computed rating; writes address category and genres by
// slug.
type TitleService struct {
	db *gorm.DB
}

func NewTitleService() *TitleService {
	return &TitleService{db: database.GetDB()}
}

// TitleDTO is the read shape. Rating is the average review score, null
// while the title has no reviews.
type TitleDTO struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Rating      *float64        `json:"rating"`
	Description *string         `json:"description"`
	Genre       []model.Genre   `json:"genre"`
	Category    *model.Category `json:"category"`
}

// TitleInput is the write shape; nil fields were absent from the payload.
type TitleInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleFilter is the query-time filter set of the list endpoint.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}

func (s *TitleService) List(filter TitleFilter, page, pageSize int) (*entity.Page, error) {
	q := s.db.Model(&model.Title{})
	if filter.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}
	if filter.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}

	var count int64
	if err := q.Session(&gorm.Session{}).Distinct("titles.id").Count(&count).Error; err != nil {
		return nil, err
	}

	var titles []model.Title
	err := q.Distinct("titles.*").
		Order("titles.name ASC").
		Scopes(paginate(page, pageSize)).
		Preload("Category").
		Preload("Genres").
		Find(&titles).Error
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratings(titles)
	if err != nil {
		return nil, err
	}

	results := make([]TitleDTO, 0, len(titles))
	for i := range titles {
		results = append(results, s.toDTO(&titles[i], ratings[titles[i].Id]))
	}
	return &entity.Page{Count: count, Results: results}, nil
}

func (s *TitleService) Get(id int) (*TitleDTO, error) {
	title, err := s.load(id)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings([]model.Title{*title})
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(title, ratings[title.Id])
	return &dto, nil
}

func (s *TitleService) Create(in TitleInput) (*TitleDTO, error) {
	fields := map[string][]string{}
	checkName(fields, deref(in.Name))
	if in.Year == nil {
		fields["year"] = append(fields["year"], "this field is required")
	} else {
		checkYear(fields, *in.Year)
	}
	if in.Category == nil {
		fields["category"] = append(fields["category"], "this field is required")
	}
	if in.Genre == nil {
		fields["genre"] = append(fields["genre"], "this field is required")
	}

	category, genres, err := s.resolveRefs(in, fields)
	if err != nil {
		return nil, err
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}

	title := model.Title{
		Name:        *in.Name,
		Year:        *in.Year,
		Description: in.Description,
		Category:    category,
		Genres:      genres,
	}
	if err := s.db.Create(&title).Error; err != nil {
		return nil, err
	}
	return s.Get(title.Id)
}

// Update applies a partial payload; a genre list in the payload replaces
// the title's genres wholesale.
func (s *TitleService) Update(id int, in TitleInput) (*TitleDTO, error) {
	title, err := s.load(id)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	if in.Name != nil {
		checkName(fields, *in.Name)
	}
	if in.Year != nil {
		checkYear(fields, *in.Year)
	}
	category, genres, err := s.resolveRefs(in, fields)
	if err != nil {
		return nil, err
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Category != nil {
		title.Category = category
		title.CategoryId = &category.Id
	}
	if err := s.db.Omit("Genres").Save(title).Error; err != nil {
		return nil, err
	}
	if in.Genre != nil {
		if err := s.db.Model(title).Association("Genres").Replace(genres); err != nil {
			return nil, err
		}
	}
	return s.Get(title.Id)
}

// Delete removes a title; its reviews (and their comments) cascade away.
func (s *TitleService) Delete(id int) error {
	title, err := s.load(id)
	if err != nil {
		return err
	}
	return s.db.Select("Genres").Delete(title).Error
}

func (s *TitleService) load(id int) (*model.Title, error) {
	var title model.Title
	err := s.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if database.IsNotFound(err) {
		return nil, entity.NotFound("title")
	} else if err != nil {
		return nil, err
	}
	return &title, nil
}

// resolveRefs turns category/genre slugs into rows, recording unknown
// slugs as field errors.
func (s *TitleService) resolveRefs(in TitleInput, fields map[string][]string) (*model.Category, []model.Genre, error) {
	var category *model.Category
	if in.Category != nil {
		var c model.Category
		err := s.db.Where("slug = ?", *in.Category).First(&c).Error
		if database.IsNotFound(err) {
			fields["category"] = append(fields["category"], "category with this slug does not exist")
		} else if err != nil {
			return nil, nil, err
		} else {
			category = &c
		}
	}

	var genres []model.Genre
	if in.Genre != nil {
		for _, slug := range *in.Genre {
			var g model.Genre
			err := s.db.Where("slug = ?", slug).First(&g).Error
			if database.IsNotFound(err) {
				fields["genre"] = append(fields["genre"], "genre with slug "+slug+" does not exist")
			} else if err != nil {
				return nil, nil, err
			} else {
				genres = append(genres, g)
			}
		}
	}
	return category, genres, nil
}

// ratings computes average review scores for the given titles in one
// grouped query.
func (s *TitleService) ratings(titles []model.Title) (map[int]*float64, error) {
	out := make(map[int]*float64, len(titles))
	if len(titles) == 0 {
		return out, nil
	}
	ids := make([]int, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].Id)
	}

	var rows []struct {
		TitleId int
		Avg     float64
	}
	err := s.db.Model(&model.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		avg := rows[i].Avg
		out[rows[i].TitleId] = &avg
	}
	return out, nil
}

func (s *TitleService) toDTO(t *model.Title, rating *float64) TitleDTO {
	genres := t.Genres
	if genres == nil {
		genres = []model.Genre{}
	}
	return TitleDTO{
		Id:          t.Id,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       genres,
		Category:    t.Category,
	}
}
