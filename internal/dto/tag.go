package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/task-manager/internal/model"
)

const colorRule = "hexcolor,len=7"

// TagCreate is the body for creating a tag. Color defaults to #3B82F6.
type TagCreate struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor,len=7"`
}

func (in TagCreate) ToTag(userID uint64) *model.Tag {
	color := in.Color
	if color == "" {
		color = model.DefaultTagColor
	}
	return &model.Tag{UserID: userID, Name: in.Name, Color: color}
}

// TagUpdate renames or recolors a tag. A null color resets the default.
type TagUpdate struct {
	Name  Optional[string] `json:"name"`
	Color Optional[string] `json:"color"`
}

func (u *TagUpdate) check(v *validator.Validate) []FieldError {
	var out []FieldError
	if u.Name.Set {
		if u.Name.Null {
			out = append(out, FieldError{Field: "name", Message: "cannot be null"})
		} else {
			out = append(out, checkVar(v, "name", u.Name.Value, "required,max=50")...)
		}
	}
	if u.Color.HasValue() {
		out = append(out, checkVar(v, "color", u.Color.Value, colorRule)...)
	}
	return out
}

func (u *TagUpdate) Apply(g *model.Tag) {
	if u.Name.HasValue() {
		g.Name = u.Name.Value
	}
	if u.Color.Set {
		g.Color = u.Color.Value
		if u.Color.Null {
			g.Color = model.DefaultTagColor
		}
	}
}

type TagResponse struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

func NewTagResponse(g *model.Tag) TagResponse {
	return TagResponse{ID: g.ID, Name: g.Name, Color: g.Color, CreatedAt: timestampText(g.CreatedAt)}
}

func NewTagResponses(gs []*model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, NewTagResponse(g))
	}
	return out
}
