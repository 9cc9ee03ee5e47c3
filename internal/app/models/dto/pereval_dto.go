package dto

import (
	"encoding/hex"

	"github.com/fstr/pereval/internal/app/models"
)

// SubmitUserRequest carries the submitter block of a submission.
type SubmitUserRequest struct {
	Email *string `json:"email" example:"user@example.com"`
	Fam   *string `json:"fam" example:"Ivanov"`
	Name  *string `json:"name" example:"Ivan"`
	Otc   *string `json:"otc" example:"Ivanovich"`
	Phone *string `json:"phone" example:"+79001234567"`
}

// SubmitCoordsRequest carries the coordinate block of a submission.
type SubmitCoordsRequest struct {
	Latitude  *float64 `json:"latitude" example:"45.3842"`
	Longitude *float64 `json:"longitude" example:"7.1525"`
	Height    *int     `json:"height" example:"1200"`
}

// LevelRequest carries the four optional seasonal difficulty grades.
type LevelRequest struct {
	Winter *string `json:"winter" example:"1A"`
	Summer *string `json:"summer" example:"1B"`
	Autumn *string `json:"autumn" example:"2A"`
	Spring *string `json:"spring" example:"2B"`
}

// ImageRequest carries one image attached to a submission. Data is
// base64-encoded on the wire.
type ImageRequest struct {
	Title string `json:"title" example:"Saddle view"`
	Data  []byte `json:"data" swaggertype:"string" format:"base64"`
}

// SubmitPerevalRequest is the POST /pereval/submitData payload. All fields
// are pointers so absence can be reported per field; any client-supplied
// status is ignored.
type SubmitPerevalRequest struct {
	BeautyTitle *string              `json:"beauty_title"`
	Title       *string              `json:"title"`
	OtherTitles *string              `json:"other_titles"`
	Connect     *string              `json:"connect"`
	AddTime     *string              `json:"add_time" example:"2023-09-22T13:18:13"`
	User        *SubmitUserRequest   `json:"user"`
	Coords      *SubmitCoordsRequest `json:"coords"`
	Level       *LevelRequest        `json:"level"`
	Images      []ImageRequest       `json:"images"`
	Status      *string              `json:"status"`
}

// UpdatePerevalRequest is the PATCH /pereval/submitData/{id} payload. Merge
// patch: only fields present in the body are written. The user block is not
// updatable; when present it must match the stored submitter.
type UpdatePerevalRequest struct {
	BeautyTitle *string              `json:"beauty_title"`
	Title       *string              `json:"title"`
	OtherTitles *string              `json:"other_titles"`
	Connect     *string              `json:"connect"`
	AddTime     *string              `json:"add_time"`
	User        *SubmitUserRequest   `json:"user"`
	Coords      *SubmitCoordsRequest `json:"coords"`
	Level       *LevelRequest        `json:"level"`
}

// IsEmpty reports whether the patch carries no updatable field at all.
func (r *UpdatePerevalRequest) IsEmpty() bool {
	if r.BeautyTitle != nil || r.Title != nil || r.OtherTitles != nil ||
		r.Connect != nil || r.AddTime != nil {
		return false
	}
	if r.Coords != nil && (r.Coords.Latitude != nil || r.Coords.Longitude != nil || r.Coords.Height != nil) {
		return false
	}
	if r.Level != nil && (r.Level.Winter != nil || r.Level.Summer != nil || r.Level.Autumn != nil || r.Level.Spring != nil) {
		return false
	}
	return true
}

// UserResponse mirrors the submitter block on the read path.
type UserResponse struct {
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}

// CoordsResponse mirrors the coordinate block on the read path.
type CoordsResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// LevelResponse mirrors the difficulty block on the read path.
type LevelResponse struct {
	Winter *string `json:"winter"`
	Summer *string `json:"summer"`
	Autumn *string `json:"autumn"`
	Spring *string `json:"spring"`
}

// ImageResponse mirrors one stored image. Data is hex-encoded, matching the
// historical read format.
type ImageResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Data  *string `json:"data"`
}

// PerevalResponse is the full record shape returned by fetch and search.
type PerevalResponse struct {
	ID          int64           `json:"id"`
	BeautyTitle *string         `json:"beauty_title"`
	Title       string          `json:"title"`
	OtherTitles *string         `json:"other_titles"`
	Connect     *string         `json:"connect"`
	AddTime     string          `json:"add_time"`
	Status      string          `json:"status"`
	Coords      CoordsResponse  `json:"coords"`
	User        UserResponse    `json:"user"`
	Level       LevelResponse   `json:"level"`
	Images      []ImageResponse `json:"images"`
}

// NewPerevalResponse maps a domain record to its wire shape.
func NewPerevalResponse(p *models.Pereval) *PerevalResponse {
	resp := &PerevalResponse{
		ID:          p.ID,
		BeautyTitle: p.BeautyTitle,
		Title:       p.Title,
		OtherTitles: p.OtherTitles,
		Connect:     p.Connect,
		AddTime:     p.AddTime.Format("2006-01-02T15:04:05"),
		Status:      string(p.Status),
		Coords: CoordsResponse{
			Latitude:  p.Coords.Latitude,
			Longitude: p.Coords.Longitude,
			Height:    p.Coords.Height,
		},
		Level: LevelResponse{
			Winter: p.Level.Winter,
			Summer: p.Level.Summer,
			Autumn: p.Level.Autumn,
			Spring: p.Level.Spring,
		},
		Images: make([]ImageResponse, 0, len(p.Images)),
	}

	if p.User != nil {
		resp.User = UserResponse{
			Email: p.User.Email,
			Fam:   p.User.Fam,
			Name:  p.User.Name,
			Otc:   p.User.Otc,
			Phone: p.User.Phone,
		}
	}

	for _, img := range p.Images {
		item := ImageResponse{ID: img.ID, Title: img.Title}
		if len(img.Img) > 0 {
			encoded := hex.EncodeToString(img.Img)
			item.Data = &encoded
		}
		resp.Images = append(resp.Images, item)
	}

	return resp
}

// NewPerevalResponseList maps a slice of domain records, never returning nil
// so an empty search still serializes as [].
func NewPerevalResponseList(items []*models.Pereval) []*PerevalResponse {
	out := make([]*PerevalResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewPerevalResponse(p))
	}
	return out
}
