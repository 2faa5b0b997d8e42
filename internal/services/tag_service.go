package services

import (
	"database/sql"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/google/uuid"
)

// TagServiceProvider defines the interface for tag services.
type TagServiceProvider interface {
	GetTagsWithQuestionNumber() ([]models.TagCount, error)
	GetTagByName(name string) (models.Tag, error)
	ResolveTagNames(names []string) ([]models.Tag, error)
	PruneUnused() (int64, error)
}

// TagService provides business logic for tag management.
type TagService struct {
	db *sql.DB
}

// NewTagService creates a new TagService.
func NewTagService(db *sql.DB) *TagService {
	return &TagService{db: db}
}

// GetTagsWithQuestionNumber lists every tag together with the number of
// questions carrying it.
func (s *TagService) GetTagsWithQuestionNumber() ([]models.TagCount, error) {
	rows, err := s.db.Query(`
		SELECT t.name, COUNT(qt.question_id)
		FROM tags t
		LEFT JOIN question_tags qt ON qt.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Name, &tc.QuestionCount); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// GetTagByName retrieves a single tag by its name, case-insensitively.
func (s *TagService) GetTagByName(name string) (models.Tag, error) {
	var tag models.Tag
	var description sql.NullString
	row := s.db.QueryRow("SELECT id, name, description FROM tags WHERE name = ?", name)
	if err := row.Scan(&tag.ID, &tag.Name, &description); err != nil {
		if err == sql.ErrNoRows {
			return models.Tag{}, ErrTagNotFound
		}
		return models.Tag{}, err
	}
	tag.Description = description.String
	return tag, nil
}

// ResolveTagNames maps tag names to tag records, creating any that do
// not exist yet. Matching is case-insensitive; the stored spelling wins.
func (s *TagService) ResolveTagNames(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		tag, err := s.GetTagByName(name)
		if err == ErrTagNotFound {
			tag = models.Tag{ID: uuid.New().String(), Name: name}
			_, err = s.db.Exec("INSERT INTO tags (id, name) VALUES (?, ?)", tag.ID, tag.Name)
		}
		if err != nil {
			return nil, err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		tags = append(tags, tag)
	}
	return tags, nil
}

// PruneUnused deletes tags no question references anymore and reports
// how many were removed.
func (s *TagService) PruneUnused() (int64, error) {
	res, err := s.db.Exec("DELETE FROM tags WHERE id NOT IN (SELECT DISTINCT tag_id FROM question_tags)")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
