package service

import (
	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

// CategoryService backs the list-create-destroy category endpoints.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService() *CategoryService {
	return &CategoryService{db: database.GetDB()}
}

type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *CategoryService) List(search string, page, pageSize int) (*entity.Page, error) {
	q := s.db.Model(&model.Category{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := q.Order("name ASC").Scopes(paginate(page, pageSize)).Find(&categories).Error; err != nil {
		return nil, err
	}
	return &entity.Page{Count: count, Results: categories}, nil
}

func (s *CategoryService) Create(in CategoryInput) (*model.Category, error) {
	fields := map[string][]string{}
	checkName(fields, in.Name)
	checkSlug(fields, in.Slug)
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}

	category := model.Category{Name: in.Name, Slug: in.Slug}
	if err := s.db.Create(&category).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, entity.Validation("slug", "category with this slug already exists")
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes a category by slug. Titles referencing it are kept and
// detached by the store (SET NULL).
func (s *CategoryService) Delete(slug string) error {
	var category model.Category
	err := s.db.Where("slug = ?", slug).First(&category).Error
	if database.IsNotFound(err) {
		return entity.NotFound("category")
	} else if err != nil {
		return err
	}
	return s.db.Delete(&category).Error
}
