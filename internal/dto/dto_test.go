package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/task-manager/internal/model"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	out := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestUserCreateValidation(t *testing.T) {
	var ok UserCreate
	if err := Parse([]byte(`{"username":"alice","email":"alice@example.com","password":"s3cret"}`), &ok); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	var missing UserCreate
	errs := fieldErrors(t, Parse([]byte(`{"email":"alice@example.com"}`), &missing))
	if _, ok := errs["username"]; !ok {
		t.Fatalf("missing username not reported: %v", errs)
	}
	if _, ok := errs["password"]; !ok {
		t.Fatalf("missing password not reported: %v", errs)
	}

	var bad UserCreate
	errs = fieldErrors(t, Parse([]byte(`{"username":"alice","email":"not-an-email","password":"x"}`), &bad))
	if errs["email"] != "must be a valid email address" {
		t.Fatalf("malformed email not reported: %v", errs)
	}

	var long UserCreate
	errs = fieldErrors(t, Parse([]byte(`{"username":"`+strings.Repeat("u", 51)+`","email":"a@b.co","password":"x"}`), &long))
	if _, ok := errs["username"]; !ok {
		t.Fatalf("overlong username not reported: %v", errs)
	}
}

func TestUserCreateNeverPrintsPassword(t *testing.T) {
	u := UserCreate{Username: "alice", Email: "alice@example.com", Password: "hunter2"}
	if strings.Contains(u.String(), "hunter2") || strings.Contains(u.GoString(), "hunter2") {
		t.Fatalf("password leaked: %s", u.String())
	}
}

func TestUserResponseHasNoPassword(t *testing.T) {
	u := &model.User{ID: 7, Username: "alice", Email: "a@example.com", HashedPassword: "$2a$10$xyz", CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(NewUserResponse(u))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "password") || strings.Contains(string(b), "$2a$") {
		t.Fatalf("password material in response: %s", b)
	}
	if !strings.Contains(string(b), `"created_at":"2026-02-09T12:00:00Z"`) {
		t.Fatalf("created_at not canonical: %s", b)
	}
}

func TestTaskCreateDefaults(t *testing.T) {
	var in TaskCreate
	if err := Parse([]byte(`{"title":"Buy milk"}`), &in); err != nil {
		t.Fatalf("parse: %v", err)
	}
	task, err := in.ToTask(3)
	if err != nil {
		t.Fatalf("to task: %v", err)
	}
	if task.Priority != model.PriorityMedium || task.Description != "" || task.DueDate != nil || task.UserID != 3 {
		t.Fatalf("defaults not applied: %+v", task)
	}
}

func TestTaskCreateRejects(t *testing.T) {
	cases := map[string]string{
		`{}`:                                "title",
		`{"title":""}`:                      "title",
		`{"title":"x","priority":"urgent"}`: "priority",
		`{"title":"x","completed":"yes","priority":7}`: "priority",
		`{"title":["x"]}`: "title",
	}
	for body, field := range cases {
		var in TaskCreate
		errs := fieldErrors(t, Parse([]byte(body), &in))
		if _, ok := errs[field]; !ok {
			t.Fatalf("%s: expected error on %s, got %v", body, field, errs)
		}
	}
}

func TestTaskCreateDueDate(t *testing.T) {
	var in TaskCreate
	if err := Parse([]byte(`{"title":"x","due_date":"2026-03-01T09:00:00Z"}`), &in); err != nil {
		t.Fatalf("parse: %v", err)
	}
	task, err := in.ToTask(1)
	if err != nil {
		t.Fatalf("to task: %v", err)
	}
	if task.DueDate == nil || !task.DueDate.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("due date = %v", task.DueDate)
	}

	var bad TaskCreate
	if err := Parse([]byte(`{"title":"x","due_date":"next tuesday"}`), &bad); err != nil {
		t.Fatalf("due_date text is not validated at parse time: %v", err)
	}
	if _, err := bad.ToTask(1); fieldErrors(t, err)["due_date"] == "" {
		t.Fatalf("unparseable due_date accepted")
	}
}

func TestTaskUpdateAbsentVersusNull(t *testing.T) {
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	base := func() *model.Task {
		return &model.Task{Title: "t", Description: "d", Priority: model.PriorityHigh, DueDate: &due}
	}

	var onlyCompleted TaskUpdate
	if err := Parse([]byte(`{"completed":true}`), &onlyCompleted); err != nil {
		t.Fatalf("parse: %v", err)
	}
	task := base()
	if err := onlyCompleted.Apply(task); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !task.Completed || task.Title != "t" || task.Description != "d" || task.Priority != model.PriorityHigh || task.DueDate == nil {
		t.Fatalf("absent fields changed: %+v", task)
	}

	var clear TaskUpdate
	if err := Parse([]byte(`{"description":null,"due_date":null,"priority":null}`), &clear); err != nil {
		t.Fatalf("parse: %v", err)
	}
	task = base()
	if err := clear.Apply(task); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if task.Description != "" || task.DueDate != nil || task.Priority != model.PriorityMedium {
		t.Fatalf("null did not clear: %+v", task)
	}
	if task.Title != "t" {
		t.Fatalf("title changed: %q", task.Title)
	}
}

func TestTaskUpdateRejects(t *testing.T) {
	cases := map[string]string{
		`{"title":null}`:        "title",
		`{"title":""}`:          "title",
		`{"completed":null}`:    "completed",
		`{"completed":"true"}`:  "completed",
		`{"priority":"urgent"}`: "priority",
	}
	for body, field := range cases {
		var u TaskUpdate
		errs := fieldErrors(t, Parse([]byte(body), &u))
		if _, ok := errs[field]; !ok {
			t.Fatalf("%s: expected error on %s, got %v", body, field, errs)
		}
	}
	var empty TaskUpdate
	if err := Parse([]byte(`{}`), &empty); err != nil || !empty.Empty() {
		t.Fatalf("empty update: %v, empty=%v", err, empty.Empty())
	}
}

func TestTaskResponseNullDueDate(t *testing.T) {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	resp := NewTaskResponse(&model.Task{ID: 1, UserID: 2, Title: "t", Priority: model.PriorityLow, CreatedAt: created, UpdatedAt: created})
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"due_date":null`) {
		t.Fatalf("due_date not null: %s", s)
	}
	if !strings.Contains(s, `"updated_at":"2026-02-09T12:00:00Z"`) {
		t.Fatalf("updated_at not canonical: %s", s)
	}
}

func TestTimestampNormalization(t *testing.T) {
	want := "2026-02-09T12:00:00Z"
	native := time.Date(2026, 2, 9, 13, 0, 0, 0, time.FixedZone("CET", 3600))
	for _, v := range []any{
		native,
		&native,
		"2026-02-09 12:00:00",
		"2026-02-09T12:00:00.000000",
		"2026-02-09 12:00:00+00:00",
		[]byte("2026-02-09T13:00:00+01:00"),
	} {
		got := Timestamp(v)
		if got == nil || *got != want {
			t.Fatalf("Timestamp(%#v) = %v, want %s", v, got, want)
		}
	}
	var nilTime *time.Time
	for _, v := range []any{nil, nilTime, "", time.Time{}} {
		if got := Timestamp(v); got != nil {
			t.Fatalf("Timestamp(%#v) = %q, want nil", v, *got)
		}
	}
	if got := Timestamp("soon"); got == nil || *got != "soon" {
		t.Fatalf("unparseable text should pass through, got %v", got)
	}
}

func TestTagValidation(t *testing.T) {
	var in TagCreate
	if err := Parse([]byte(`{"name":"work"}`), &in); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tag := in.ToTag(1); tag.Color != model.DefaultTagColor {
		t.Fatalf("color default = %q", tag.Color)
	}
	var bad TagCreate
	if errs := fieldErrors(t, Parse([]byte(`{"name":"work","color":"blue"}`), &bad)); errs["color"] == "" {
		t.Fatalf("bad color accepted: %v", errs)
	}
	var upd TagUpdate
	if err := Parse([]byte(`{"color":null}`), &upd); err != nil {
		t.Fatalf("parse update: %v", err)
	}
	g := &model.Tag{Name: "n", Color: "#000000"}
	upd.Apply(g)
	if g.Color != model.DefaultTagColor || g.Name != "n" {
		t.Fatalf("tag update: %+v", g)
	}
}

func TestMessageRole(t *testing.T) {
	var in MessageCreate
	if errs := fieldErrors(t, Parse([]byte(`{"role":"system","content":"hi"}`), &in)); errs["role"] == "" {
		t.Fatalf("unknown role accepted: %v", errs)
	}
}
