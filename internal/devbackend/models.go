package devbackend

import (
	"time"
)

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"-"`
	Password  string    `json:"-"`
	APIKey    string    `gorm:"uniqueIndex;not null" json:"-"`
	About     string    `json:"about"`
	Avatar    *string   `json:"avatar"`
	Banner    *string   `json:"banner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

type Submission struct {
	ID        int       `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	URL       *string   `gorm:"uniqueIndex"`
	Content   *string   `gorm:"type:text"`
	UserID    int       `gorm:"index;not null"`
	User      User      `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID           int    `gorm:"primaryKey"`
	Content      string `gorm:"type:text;not null"`
	UserID       int    `gorm:"index;not null"`
	User         User   `gorm:"foreignKey:UserID"`
	SubmissionID int    `gorm:"index;not null"`
	ParentID     *int   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Target kinds shared by votes and favorites.
const (
	KindSubmission = "submission"
	KindComment    = "comment"
)

// Vote is one upvote. A user votes a target at most once.
type Vote struct {
	ID         int    `gorm:"primaryKey"`
	UserID     int    `gorm:"uniqueIndex:idx_vote_target;not null"`
	TargetKind string `gorm:"uniqueIndex:idx_vote_target;size:16;not null"`
	TargetID   int    `gorm:"uniqueIndex:idx_vote_target;not null"`
	CreatedAt  time.Time
}

type Favorite struct {
	ID         int    `gorm:"primaryKey"`
	UserID     int    `gorm:"uniqueIndex:idx_favorite_target;not null"`
	TargetKind string `gorm:"uniqueIndex:idx_favorite_target;size:16;not null"`
	TargetID   int    `gorm:"uniqueIndex:idx_favorite_target;not null"`
	CreatedAt  time.Time
}

type Hidden struct {
	ID           int        `gorm:"primaryKey"`
	UserID       int        `gorm:"uniqueIndex:idx_hidden_submission;not null"`
	SubmissionID int        `gorm:"uniqueIndex:idx_hidden_submission;not null"`
	Submission   Submission `gorm:"foreignKey:SubmissionID"`
	CreatedAt    time.Time
}

func (Hidden) TableName() string {
	return "hidden_submissions"
}
