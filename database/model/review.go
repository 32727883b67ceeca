package model

import "time"

// Review is a user's single opinion on a title. The composite unique
// index backs the one-review-per-(title,author) invariant at the store
// level, so concurrent creates cannot both win.
type Review struct {
	Id       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleId  int       `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Title    Title     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorId int       `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"not null"`
	Score    int       `json:"score" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

// OwnerID satisfies permission.Target.
func (r *Review) OwnerID() int { return r.AuthorId }

// Comment is a child of a review and disappears with it.
type Comment struct {
	Id       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewId int       `json:"-" gorm:"not null;index"`
	Review   Review    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorId int       `json:"-" gorm:"not null"`
	Author   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"size:255;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

// OwnerID satisfies permission.Target.
func (c *Comment) OwnerID() int { return c.AuthorId }
