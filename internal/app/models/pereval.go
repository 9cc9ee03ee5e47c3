package models

import (
	"time"
)

// Status is the moderation status of a pereval record.
type Status string

const (
	// StatusNew is the initial status of every submitted record.
	StatusNew Status = "new"
	// StatusPending marks a record taken by a moderator.
	StatusPending Status = "pending"
	// StatusAccepted marks a record approved by moderation.
	StatusAccepted Status = "accepted"
	// StatusRejected marks a record declined by moderation.
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// User defines the submitter model based on the 'users' table
type User struct {
	ID    int64  `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Phone string `json:"phone" db:"phone"`
	Fam   string `json:"fam" db:"fam"`
	Name  string `json:"name" db:"name"`
	Otc   string `json:"otc" db:"otc"`
}

// Coords holds the geographic position of a pass.
type Coords struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Height    int     `json:"height" db:"height"`
}

// Level holds the four seasonal difficulty grades. Each grade is a free-form
// string and may be absent.
type Level struct {
	Winter *string `json:"winter" db:"winter"`
	Summer *string `json:"summer" db:"summer"`
	Autumn *string `json:"autumn" db:"autumn"`
	Spring *string `json:"spring" db:"spring"`
}

// Pereval defines the pass model based on the 'pereval_added' table
type Pereval struct {
	ID          int64          `json:"id" db:"id"`
	DateAdded   time.Time      `json:"dateAdded" db:"date_added"`
	BeautyTitle *string        `json:"beautyTitle" db:"beauty_title"`
	Title       string         `json:"title" db:"title"`
	OtherTitles *string        `json:"otherTitles" db:"other_titles"`
	Connect     *string        `json:"connect" db:"connect"`
	AddTime     time.Time      `json:"addTime" db:"add_time"`
	User        *User          `json:"user"` // Relation, no db tag
	Coords      Coords         `json:"coords"`
	Level       Level          `json:"level"`
	Status      Status         `json:"status" db:"status"`
	Images      []PerevalImage `json:"images"` // Relation, no db tag
}

// PerevalImage defines the image model based on the 'pereval_images' table
type PerevalImage struct {
	ID        int64     `json:"id" db:"id"`
	PerevalID int64     `json:"perevalId" db:"pereval_id"`
	DateAdded time.Time `json:"dateAdded" db:"date_added"`
	Title     string    `json:"title" db:"title"`
	Img       []byte    `json:"img" db:"img"`
}

// PerevalPatch carries a sparse update for a pereval record. Only non-nil
// fields are written; date_added, status and user_id are never part of it.
type PerevalPatch struct {
	BeautyTitle *string
	Title       *string
	OtherTitles *string
	Connect     *string
	AddTime     *time.Time
	Latitude    *float64
	Longitude   *float64
	Height      *int
	Winter      *string
	Summer      *string
	Autumn      *string
	Spring      *string

	// User, when set, must match the stored submitter exactly for the patch
	// to be applied. It is never written.
	User *User
}

// Fields returns the column -> value map of the supplied patch fields.
func (p *PerevalPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})

	set := func(column string, v interface{}, present bool) {
		if present {
			fields[column] = v
		}
	}

	set("beauty_title", p.BeautyTitle, p.BeautyTitle != nil)
	set("title", p.Title, p.Title != nil)
	set("other_titles", p.OtherTitles, p.OtherTitles != nil)
	set("connect", p.Connect, p.Connect != nil)
	set("add_time", p.AddTime, p.AddTime != nil)
	set("latitude", p.Latitude, p.Latitude != nil)
	set("longitude", p.Longitude, p.Longitude != nil)
	set("height", p.Height, p.Height != nil)
	set("winter", p.Winter, p.Winter != nil)
	set("summer", p.Summer, p.Summer != nil)
	set("autumn", p.Autumn, p.Autumn != nil)
	set("spring", p.Spring, p.Spring != nil)

	return fields
}

// Matches reports whether other carries exactly the same submitter data.
func (u *User) Matches(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.Email == other.Email &&
		u.Phone == other.Phone &&
		u.Fam == other.Fam &&
		u.Name == other.Name &&
		u.Otc == other.Otc
}
