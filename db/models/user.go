package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// User : operator account of the forge studio
type User struct {
	ID          int64        `json:"id" bun:",pk,autoincrement"`
	Email       string       `json:"email" validate:"omitempty,email" bun:",nullzero"`
	Login       string       `json:"login" bun:",unique,notnull"`
	Password    string       `json:"-" bun:",notnull"`
	Deactivated bool         `json:"deactivated" bun:",nullzero"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		u.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)
