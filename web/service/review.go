package service

import (
	"time"

	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

// ReviewService backs the review endpoints, always scoped under a parent
// title resolved from the path.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService() *ReviewService {
	return &ReviewService{db: database.GetDB()}
}

type ReviewDTO struct {
	Id      int       `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type ReviewInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// DTO maps a loaded review onto its wire shape. Controllers use it for
// responses built from an already authorized review.
func (s *ReviewService) DTO(r *model.Review) ReviewDTO {
	return ReviewDTO{
		Id:      r.Id,
		Title:   r.Title.Name,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// titleByID resolves the parent path segment; a missing title is 404.
func (s *ReviewService) titleByID(titleID int) (*model.Title, error) {
	var title model.Title
	err := s.db.First(&title, titleID).Error
	if database.IsNotFound(err) {
		return nil, entity.NotFound("title")
	} else if err != nil {
		return nil, err
	}
	return &title, nil
}

func (s *ReviewService) List(titleID, page, pageSize int) (*entity.Page, error) {
	if _, err := s.titleByID(titleID); err != nil {
		return nil, err
	}

	q := s.db.Model(&model.Review{}).Where("title_id = ?", titleID)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}

	var reviews []model.Review
	err := q.Order("pub_date ASC").
		Scopes(paginate(page, pageSize)).
		Preload("Title").
		Preload("Author").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	results := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		results = append(results, s.DTO(&reviews[i]))
	}
	return &entity.Page{Count: count, Results: results}, nil
}

// Get returns the review only when it belongs to the given title.
func (s *ReviewService) Get(titleID, reviewID int) (*model.Review, error) {
	if _, err := s.titleByID(titleID); err != nil {
		return nil, err
	}
	var review model.Review
	err := s.db.Where("title_id = ? AND id = ?", titleID, reviewID).
		Preload("Title").
		Preload("Author").
		First(&review).Error
	if database.IsNotFound(err) {
		return nil, entity.NotFound("review")
	} else if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create adds the author's review of the title. The author and title are
// taken from the request context and path, never from the payload.
func (s *ReviewService) Create(titleID int, author *model.User, in ReviewInput) (ReviewDTO, error) {
	title, err := s.titleByID(titleID)
	if err != nil {
		return ReviewDTO{}, err
	}

	fields := map[string][]string{}
	if in.Text == nil || *in.Text == "" {
		fields["text"] = append(fields["text"], "this field is required")
	}
	if in.Score == nil {
		fields["score"] = append(fields["score"], "this field is required")
	} else if *in.Score < 1 || *in.Score > 10 {
		fields["score"] = append(fields["score"], "score must be between 1 and 10")
	}
	if err := fieldErrors(fields); err != nil {
		return ReviewDTO{}, err
	}

	var count int64
	err = s.db.Model(&model.Review{}).
		Where("title_id = ? AND author_id = ?", title.Id, author.Id).
		Count(&count).Error
	if err != nil {
		return ReviewDTO{}, err
	}
	if count > 0 {
		return ReviewDTO{}, entity.Validation("non_field_errors", "you have already reviewed this title")
	}

	review := model.Review{
		TitleId:  title.Id,
		AuthorId: author.Id,
		Text:     *in.Text,
		Score:    *in.Score,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if database.IsDuplicate(err) {
			// Concurrent create on the same (title, author) pair.
			return ReviewDTO{}, entity.Validation("non_field_errors", "you have already reviewed this title")
		}
		return ReviewDTO{}, err
	}
	review.Title = *title
	review.Author = *author
	return s.DTO(&review), nil
}

// Update applies a partial payload. PubDate is server-owned and never
// touched.
func (s *ReviewService) Update(review *model.Review, in ReviewInput) (ReviewDTO, error) {
	fields := map[string][]string{}
	if in.Text != nil && *in.Text == "" {
		fields["text"] = append(fields["text"], "this field may not be blank")
	}
	if in.Score != nil && (*in.Score < 1 || *in.Score > 10) {
		fields["score"] = append(fields["score"], "score must be between 1 and 10")
	}
	if err := fieldErrors(fields); err != nil {
		return ReviewDTO{}, err
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		review.Score = *in.Score
	}
	if err := s.db.Save(review).Error; err != nil {
		return ReviewDTO{}, err
	}
	return s.DTO(review), nil
}

// Delete removes the review; its comments cascade away.
func (s *ReviewService) Delete(review *model.Review) error {
	return s.db.Delete(review).Error
}
