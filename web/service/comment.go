package service

import (
	"time"

	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

// CommentService backs the comment endpoints, scoped under a review that
// itself must belong to the title in the path.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService() *CommentService {
	return &CommentService{db: database.GetDB()}
}

type CommentDTO struct {
	Id      int       `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

type CommentInput struct {
	Text *string `json:"text"`
}

// DTO maps a loaded comment onto its wire shape.
func (s *CommentService) DTO(c *model.Comment) CommentDTO {
	return CommentDTO{
		Id:      c.Id,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}

// reviewByPath resolves both parent path segments; either one missing or
// unlinked is 404.
func (s *CommentService) reviewByPath(titleID, reviewID int) (*model.Review, error) {
	var title model.Title
	err := s.db.First(&title, titleID).Error
	if database.IsNotFound(err) {
		return nil, entity.NotFound("title")
	} else if err != nil {
		return nil, err
	}

	var review model.Review
	err = s.db.Where("title_id = ? AND id = ?", titleID, reviewID).First(&review).Error
	if database.IsNotFound(err) {
		return nil, entity.NotFound("review")
	} else if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *CommentService) List(titleID, reviewID, page, pageSize int) (*entity.Page, error) {
	review, err := s.reviewByPath(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	q := s.db.Model(&model.Comment{}).Where("review_id = ?", review.Id)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}

	var comments []model.Comment
	err = q.Order("pub_date ASC").
		Scopes(paginate(page, pageSize)).
		Preload("Author").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	results := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		results = append(results, s.DTO(&comments[i]))
	}
	return &entity.Page{Count: count, Results: results}, nil
}

func (s *CommentService) Get(titleID, reviewID, commentID int) (*model.Comment, error) {
	review, err := s.reviewByPath(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	var comment model.Comment
	err = s.db.Where("review_id = ? AND id = ?", review.Id, commentID).
		Preload("Author").
		First(&comment).Error
	if database.IsNotFound(err) {
		return nil, entity.NotFound("comment")
	} else if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create adds the author's comment under the path-resolved review.
func (s *CommentService) Create(titleID, reviewID int, author *model.User, in CommentInput) (CommentDTO, error) {
	review, err := s.reviewByPath(titleID, reviewID)
	if err != nil {
		return CommentDTO{}, err
	}

	fields := map[string][]string{}
	if in.Text == nil || *in.Text == "" {
		fields["text"] = append(fields["text"], "this field is required")
	} else if len(*in.Text) > commentMaxLength {
		fields["text"] = append(fields["text"], "ensure this field has no more than 255 characters")
	}
	if err := fieldErrors(fields); err != nil {
		return CommentDTO{}, err
	}

	comment := model.Comment{
		ReviewId: review.Id,
		AuthorId: author.Id,
		Text:     *in.Text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return CommentDTO{}, err
	}
	comment.Author = *author
	return s.DTO(&comment), nil
}

func (s *CommentService) Update(comment *model.Comment, in CommentInput) (CommentDTO, error) {
	fields := map[string][]string{}
	if in.Text != nil {
		if *in.Text == "" {
			fields["text"] = append(fields["text"], "this field may not be blank")
		} else if len(*in.Text) > commentMaxLength {
			fields["text"] = append(fields["text"], "ensure this field has no more than 255 characters")
		}
	}
	if err := fieldErrors(fields); err != nil {
		return CommentDTO{}, err
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}
	if err := s.db.Save(comment).Error; err != nil {
		return CommentDTO{}, err
	}
	return s.DTO(comment), nil
}

func (s *CommentService) Delete(comment *model.Comment) error {
	return s.db.Delete(comment).Error
}
