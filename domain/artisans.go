package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fundwit/go-commons/types"
)

type Specialties []string

func (t Specialties) Value() (driver.Value, error) {
	jsonBytes, err := json.Marshal(&t)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (t *Specialties) Scan(v interface{}) error {
	jsonString, ok := v.(string)
	if !ok {
		jsonByte, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("type is neither string nor []byte: %T %v", v, v)
		}
		jsonString = string(jsonByte)
	}
	return json.Unmarshal([]byte(jsonString), t)
}

// Artisan is a worker profile. Work orders and stage entries reference it
// through assigned_to; the stage engine never mutates it.
type Artisan struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`

	Specialties Specialties `json:"specialties" sql:"type:TEXT"`
	Active      bool        `json:"active"`

	CompletedOrders int `json:"completed_orders"`
	AverageRating   int `json:"average_rating"`

	CreateTime types.Timestamp `json:"create_time" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"update_time" sql:"type:DATETIME(6) NOT NULL"`
	DeletedAt  *time.Time      `json:"-" sql:"index"`
}

func (r Artisan) TableName() string {
	return "artisan"
}

type ArtisanCreation struct {
	Name        string   `json:"name" binding:"required,lte=255"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role"`
	Specialties []string `json:"specialties"`
}

type ArtisanQuery struct {
	Role       string `json:"role" form:"role"`
	ActiveOnly bool   `json:"active_only" form:"active_only"`
}
