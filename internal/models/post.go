package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Post - одна запись ленты в том виде, в каком её отдаёт источник.
type Post struct {
	ID       PostID `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl,omitempty"`
	BodyHTML string `json:"bodyHtml"`
}

// PostID - идентификатор записи. В ленте встречается и числом, и строкой,
// поэтому хранится исходный текст.
type PostID string

func (id PostID) String() string {
	return string(id)
}

// Int возвращает числовое значение идентификатора.
// Пустой и нечисловой идентификатор дают false.
func (id PostID) Int() (int64, bool) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// "12.0" из таблицы тоже считается числом 12
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id must be a number or a string: %w", err)
	}
	*id = PostID(n.String())
	return nil
}

func (id PostID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}
