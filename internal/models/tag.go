package models

// Tag labels questions by topic. Names are unique, case-insensitively.
type Tag struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TagCount pairs a tag name with the number of questions carrying it.
type TagCount struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"qcnt"`
}
