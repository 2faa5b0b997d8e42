package services

import (
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/google/uuid"
)

// Question list orderings accepted by GetQuestions.
const (
	OrderNewest     = "newest"
	OrderActive     = "active"
	OrderUnanswered = "unanswered"
)

// QuestionServiceProvider defines the interface for question services.
type QuestionServiceProvider interface {
	AddQuestion(q models.Question, tagNames []string) (models.Question, error)
	GetQuestions(order, search string) ([]models.Question, error)
	GetQuestionByID(qid, viewer string) (models.Question, error)
	VoteQuestion(qid, username string, upvote bool) (models.VoteResult, error)
	AddAnswer(qid string, ans models.Answer) (models.Answer, error)
	AddComment(parentType, parentID string, c models.Comment) (models.Comment, error)
}

// QuestionService provides business logic for questions, answers and
// comments.
type QuestionService struct {
	db      *sql.DB
	tagsSvc TagServiceProvider
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(db *sql.DB, tagsSvc TagServiceProvider) *QuestionService {
	return &QuestionService{db: db, tagsSvc: tagsSvc}
}

// AddQuestion persists a new question, resolving its tag names to tag
// records (creating missing ones).
func (s *QuestionService) AddQuestion(q models.Question, tagNames []string) (models.Question, error) {
	tags, err := s.tagsSvc.ResolveTagNames(tagNames)
	if err != nil {
		return models.Question{}, err
	}

	q.ID = uuid.New().String()
	q.Tags = tags
	q.Answers = []models.Answer{}
	q.Views = []string{}
	q.UpVotes = []string{}
	q.DownVotes = []string{}
	q.Comments = []models.Comment{}
	if q.AskDateTime.IsZero() {
		q.AskDateTime = time.Now().UTC()
	}

	// The question row and its tag links land together or not at all.
	tx, err := s.db.Begin()
	if err != nil {
		return models.Question{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO questions (id, title, text, asked_by, ask_date_time, views_json, up_votes_json, down_votes_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Title, q.Text, q.AskedBy, q.AskDateTime,
		marshalList(q.Views), marshalList(q.UpVotes), marshalList(q.DownVotes)); err != nil {
		return models.Question{}, err
	}

	for _, tag := range tags {
		if _, err := tx.Exec("INSERT INTO question_tags (question_id, tag_id) VALUES (?, ?)", q.ID, tag.ID); err != nil {
			return models.Question{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// GetQuestions lists questions filtered by a search string and sorted
// by the requested order. Search words match title/text substrings,
// "[tag]" tokens match tag names exactly.
func (s *QuestionService) GetQuestions(order, search string) ([]models.Question, error) {
	rows, err := s.db.Query("SELECT id FROM questions ORDER BY ask_date_time DESC, rowid DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questions := []models.Question{}
	for _, id := range ids {
		q, err := s.loadQuestion(id)
		if err != nil {
			return nil, err
		}
		if matchesSearch(q, search) {
			questions = append(questions, q)
		}
	}

	switch order {
	case OrderUnanswered:
		unanswered := []models.Question{}
		for _, q := range questions {
			if len(q.Answers) == 0 {
				unanswered = append(unanswered, q)
			}
		}
		questions = unanswered
	case OrderActive:
		// Most recently answered first; questions without answers trail,
		// newest-first among themselves. Already newest-first, so a
		// stable sort on answer recency is enough.
		sort.SliceStable(questions, func(i, j int) bool {
			return latestAnswerTime(questions[i]).After(latestAnswerTime(questions[j]))
		})
	}
	return questions, nil
}

// GetQuestionByID retrieves a single question and records the viewer's
// visit. Each viewer is counted once.
func (s *QuestionService) GetQuestionByID(qid, viewer string) (models.Question, error) {
	q, err := s.loadQuestion(qid)
	if err != nil {
		return models.Question{}, err
	}

	if viewer != "" && !contains(q.Views, viewer) {
		q.Views = append(q.Views, viewer)
		if _, err := s.db.Exec("UPDATE questions SET views_json = ? WHERE id = ?", marshalList(q.Views), qid); err != nil {
			return models.Question{}, err
		}
	}
	return q, nil
}

// VoteQuestion casts, switches or cancels a vote. A user appears in at
// most one of the two vote lists; voting the same way twice cancels.
func (s *QuestionService) VoteQuestion(qid, username string, upvote bool) (models.VoteResult, error) {
	q, err := s.loadQuestion(qid)
	if err != nil {
		return models.VoteResult{}, err
	}

	var msg string
	if upvote {
		if contains(q.UpVotes, username) {
			q.UpVotes = remove(q.UpVotes, username)
			msg = "Upvote cancelled successfully"
		} else {
			q.UpVotes = append(q.UpVotes, username)
			q.DownVotes = remove(q.DownVotes, username)
			msg = "Question upvoted successfully"
		}
	} else {
		if contains(q.DownVotes, username) {
			q.DownVotes = remove(q.DownVotes, username)
			msg = "Downvote cancelled successfully"
		} else {
			q.DownVotes = append(q.DownVotes, username)
			q.UpVotes = remove(q.UpVotes, username)
			msg = "Question downvoted successfully"
		}
	}

	if _, err := s.db.Exec("UPDATE questions SET up_votes_json = ?, down_votes_json = ? WHERE id = ?",
		marshalList(q.UpVotes), marshalList(q.DownVotes), qid); err != nil {
		return models.VoteResult{}, err
	}
	return models.VoteResult{Msg: msg, UpVotes: q.UpVotes, DownVotes: q.DownVotes}, nil
}

// AddAnswer persists an answer on a question.
func (s *QuestionService) AddAnswer(qid string, ans models.Answer) (models.Answer, error) {
	if err := s.questionExists(qid); err != nil {
		return models.Answer{}, err
	}

	ans.ID = uuid.New().String()
	ans.Comments = []models.Comment{}
	if ans.AnsDateTime.IsZero() {
		ans.AnsDateTime = time.Now().UTC()
	}

	_, err := s.db.Exec("INSERT INTO answers (id, question_id, text, ans_by, ans_date_time) VALUES (?, ?, ?, ?, ?)",
		ans.ID, qid, ans.Text, ans.AnsBy, ans.AnsDateTime)
	if err != nil {
		return models.Answer{}, err
	}
	return ans, nil
}

// AddComment persists a comment on a question or an answer.
func (s *QuestionService) AddComment(parentType, parentID string, c models.Comment) (models.Comment, error) {
	switch parentType {
	case "question":
		if err := s.questionExists(parentID); err != nil {
			return models.Comment{}, err
		}
	case "answer":
		var id string
		err := s.db.QueryRow("SELECT id FROM answers WHERE id = ?", parentID).Scan(&id)
		if err == sql.ErrNoRows {
			return models.Comment{}, ErrAnswerNotFound
		}
		if err != nil {
			return models.Comment{}, err
		}
	}

	c.ID = uuid.New().String()
	if c.CommentDateTime.IsZero() {
		c.CommentDateTime = time.Now().UTC()
	}

	_, err := s.db.Exec("INSERT INTO comments (id, parent_type, parent_id, text, comment_by, comment_date_time) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, parentType, parentID, c.Text, c.CommentBy, c.CommentDateTime)
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (s *QuestionService) questionExists(qid string) error {
	var id string
	err := s.db.QueryRow("SELECT id FROM questions WHERE id = ?", qid).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrQuestionNotFound
	}
	return err
}

// loadQuestion builds the full aggregate: tags, answers with their
// comments, question comments and the JSON-encoded collection fields.
func (s *QuestionService) loadQuestion(qid string) (models.Question, error) {
	var q models.Question
	var views, upVotes, downVotes sql.NullString

	row := s.db.QueryRow("SELECT id, title, text, asked_by, ask_date_time, views_json, up_votes_json, down_votes_json FROM questions WHERE id = ?", qid)
	err := row.Scan(&q.ID, &q.Title, &q.Text, &q.AskedBy, &q.AskDateTime, &views, &upVotes, &downVotes)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Question{}, ErrQuestionNotFound
		}
		return models.Question{}, err
	}
	q.Views = unmarshalList(views)
	q.UpVotes = unmarshalList(upVotes)
	q.DownVotes = unmarshalList(downVotes)

	if q.Tags, err = s.loadQuestionTags(qid); err != nil {
		return models.Question{}, err
	}
	if q.Answers, err = s.loadAnswers(qid); err != nil {
		return models.Question{}, err
	}
	if q.Comments, err = s.loadComments("question", qid); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

func (s *QuestionService) loadQuestionTags(qid string) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.description
		FROM tags t
		JOIN question_tags qt ON qt.tag_id = t.id
		WHERE qt.question_id = ?
		ORDER BY t.name ASC`, qid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		var description sql.NullString
		if err := rows.Scan(&tag.ID, &tag.Name, &description); err != nil {
			return nil, err
		}
		tag.Description = description.String
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// loadAnswers returns a question's answers newest-first, each with its
// comments attached.
func (s *QuestionService) loadAnswers(qid string) ([]models.Answer, error) {
	rows, err := s.db.Query("SELECT id, text, ans_by, ans_date_time FROM answers WHERE question_id = ? ORDER BY ans_date_time DESC, rowid DESC", qid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var ans models.Answer
		if err := rows.Scan(&ans.ID, &ans.Text, &ans.AnsBy, &ans.AnsDateTime); err != nil {
			return nil, err
		}
		answers = append(answers, ans)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range answers {
		comments, err := s.loadComments("answer", answers[i].ID)
		if err != nil {
			return nil, err
		}
		answers[i].Comments = comments
	}
	return answers, nil
}

// loadComments returns a parent's comments oldest-first.
func (s *QuestionService) loadComments(parentType, parentID string) ([]models.Comment, error) {
	rows, err := s.db.Query("SELECT id, text, comment_by, comment_date_time FROM comments WHERE parent_type = ? AND parent_id = ? ORDER BY comment_date_time ASC, rowid ASC", parentType, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.CommentBy, &c.CommentDateTime); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// matchesSearch reports whether a question matches the search string.
// Plain words are case-insensitive substrings of title or text; words
// wrapped in brackets name tags. An empty search matches everything.
func matchesSearch(q models.Question, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}

	for _, token := range strings.Fields(search) {
		if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
			name := token[1 : len(token)-1]
			for _, tag := range q.Tags {
				if strings.EqualFold(tag.Name, name) {
					return true
				}
			}
			continue
		}
		lower := strings.ToLower(token)
		if strings.Contains(strings.ToLower(q.Title), lower) || strings.Contains(strings.ToLower(q.Text), lower) {
			return true
		}
	}
	return false
}

// latestAnswerTime returns the newest answer timestamp, or the zero
// time for unanswered questions so they sort last.
func latestAnswerTime(q models.Question) time.Time {
	var latest time.Time
	for _, ans := range q.Answers {
		if ans.AnsDateTime.After(latest) {
			latest = ans.AnsDateTime
		}
	}
	return latest
}

func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func unmarshalList(raw sql.NullString) []string {
	list := []string{}
	if raw.Valid && raw.String != "" {
		_ = json.Unmarshal([]byte(raw.String), &list)
	}
	return list
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

func remove(list []string, item string) []string {
	out := list[:0]
	for _, v := range list {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}
