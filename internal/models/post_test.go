package models_test

import (
	"encoding/json"
	"testing"

	"blogfront/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPostUnmarshal(t *testing.T) {
	raw := `[
		{"id": 7, "title": "Number id", "date": "2025-12-09", "imageUrl": "https://img/x.png", "bodyHtml": "<p>a</p>"},
		{"id": "12", "title": "String id", "date": "December 09, 2025 at 1:05PM", "bodyHtml": ""},
		{"id": null, "title": "No id"}
	]`

	var posts []models.Post
	require.NoError(t, json.Unmarshal([]byte(raw), &posts))
	require.Len(t, posts, 3)

	require.Equal(t, models.PostID("7"), posts[0].ID)
	require.Equal(t, "https://img/x.png", posts[0].ImageURL)
	require.Equal(t, "<p>a</p>", posts[0].BodyHTML)

	require.Equal(t, models.PostID("12"), posts[1].ID)
	require.Empty(t, posts[1].ImageURL)

	require.Equal(t, models.PostID(""), posts[2].ID)
}

func TestPostUnmarshal_BadID(t *testing.T) {
	var p models.Post
	require.Error(t, json.Unmarshal([]byte(`{"id": true}`), &p))
}

func TestPostIDInt(t *testing.T) {
	testCases := []struct {
		id     models.PostID
		want   int64
		wantOK bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"12.0", 12, true},
		{"-3", -3, true},
		{"12.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.id), func(t *testing.T) {
			got, ok := tc.id.Int()
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPostIDMarshal(t *testing.T) {
	b, err := json.Marshal(models.Post{ID: "5", Title: "t"})
	require.NoError(t, err)
	require.Contains(t, string(b), `"id":5`)

	b, err = json.Marshal(models.Post{ID: "slug-1"})
	require.NoError(t, err)
	require.Contains(t, string(b), `"id":"slug-1"`)
}
