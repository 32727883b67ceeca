package service

import (
	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

// GenreService backs the list-create-destroy genre endpoints.
type GenreService struct {
	db *gorm.DB
}

func NewGenreService() *GenreService {
	return &GenreService{db: database.GetDB()}
}

type GenreInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *GenreService) List(search string, page, pageSize int) (*entity.Page, error) {
	q := s.db.Model(&model.Genre{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}

	var genres []model.Genre
	if err := q.Order("name ASC").Scopes(paginate(page, pageSize)).Find(&genres).Error; err != nil {
		return nil, err
	}
	return &entity.Page{Count: count, Results: genres}, nil
}

func (s *GenreService) Create(in GenreInput) (*model.Genre, error) {
	fields := map[string][]string{}
	checkName(fields, in.Name)
	checkSlug(fields, in.Slug)
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}

	genre := model.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.db.Create(&genre).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, entity.Validation("slug", "genre with this slug already exists")
		}
		return nil, err
	}
	return &genre, nil
}

// Delete removes a genre by slug; join rows to titles cascade away.
func (s *GenreService) Delete(slug string) error {
	var genre model.Genre
	err := s.db.Where("slug = ?", slug).First(&genre).Error
	if database.IsNotFound(err) {
		return entity.NotFound("genre")
	} else if err != nil {
		return err
	}
	return s.db.Delete(&genre).Error
}
