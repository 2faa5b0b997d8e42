package services

import (
	"testing"
	"time"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestionService(t *testing.T) *QuestionService {
	t.Helper()
	db := newTestDB(t)
	return NewQuestionService(db, NewTagService(db))
}

func askQuestion(t *testing.T, svc *QuestionService, title string, tags []string, askedAt time.Time) models.Question {
	t.Helper()
	q, err := svc.AddQuestion(models.Question{
		Title:       title,
		Text:        "text of " + title,
		AskedBy:     "sana",
		AskDateTime: askedAt,
	}, tags)
	require.NoError(t, err)
	return q
}

func TestAddQuestionResolvesTags(t *testing.T) {
	svc := newQuestionService(t)

	q := askQuestion(t, svc, "How do I join tables?", []string{"sqlite", "go"}, time.Now().UTC())
	require.Len(t, q.Tags, 2)

	// Same tag in different case reuses the existing record.
	q2 := askQuestion(t, svc, "Generics question", []string{"GO"}, time.Now().UTC())
	require.Len(t, q2.Tags, 1)

	var goTag models.Tag
	for _, tag := range q.Tags {
		if tag.Name == "go" {
			goTag = tag
		}
	}
	assert.Equal(t, goTag.ID, q2.Tags[0].ID)
}

// brokenTagService hands back duplicate tag records so the second
// question_tags insert violates the primary key.
type brokenTagService struct {
	TagServiceProvider
}

func (s *brokenTagService) ResolveTagNames(names []string) ([]models.Tag, error) {
	tag := models.Tag{ID: "t-dup", Name: "dup"}
	return []models.Tag{tag, tag}, nil
}

// A failure while linking tags must not leave a half-written question
// behind.
func TestAddQuestionRollsBackOnTagLinkFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, &brokenTagService{})

	_, err := svc.AddQuestion(models.Question{
		Title:       "doomed",
		Text:        "t",
		AskedBy:     "sana",
		AskDateTime: time.Now().UTC(),
	}, []string{"dup"})
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM question_tags").Scan(&count))
	assert.Zero(t, count)
}

func TestGetQuestionsNewestFirst(t *testing.T) {
	svc := newQuestionService(t)

	askQuestion(t, svc, "old", []string{"go"}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	askQuestion(t, svc, "new", []string{"go"}, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	questions, err := svc.GetQuestions(OrderNewest, "")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "new", questions[0].Title)
	assert.Equal(t, "old", questions[1].Title)
}

func TestGetQuestionsUnanswered(t *testing.T) {
	svc := newQuestionService(t)

	answered := askQuestion(t, svc, "answered", []string{"go"}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	askQuestion(t, svc, "open", []string{"go"}, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddAnswer(answered.ID, models.Answer{Text: "like this", AnsBy: "lee"})
	require.NoError(t, err)

	questions, err := svc.GetQuestions(OrderUnanswered, "")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "open", questions[0].Title)
}

func TestGetQuestionsActiveOrder(t *testing.T) {
	svc := newQuestionService(t)

	first := askQuestion(t, svc, "first", []string{"go"}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	second := askQuestion(t, svc, "second", []string{"go"}, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	askQuestion(t, svc, "silent", []string{"go"}, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddAnswer(second.ID, models.Answer{Text: "a", AnsBy: "lee", AnsDateTime: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = svc.AddAnswer(first.ID, models.Answer{Text: "b", AnsBy: "lee", AnsDateTime: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	questions, err := svc.GetQuestions(OrderActive, "")
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "first", questions[0].Title)
	assert.Equal(t, "second", questions[1].Title)
	// Unanswered questions trail.
	assert.Equal(t, "silent", questions[2].Title)
}

func TestGetQuestionsSearch(t *testing.T) {
	svc := newQuestionService(t)

	askQuestion(t, svc, "indexing in sqlite", []string{"sqlite"}, time.Now().UTC())
	askQuestion(t, svc, "channels deadlock", []string{"go", "concurrency"}, time.Now().UTC())

	byWord, err := svc.GetQuestions(OrderNewest, "deadlock")
	require.NoError(t, err)
	require.Len(t, byWord, 1)
	assert.Equal(t, "channels deadlock", byWord[0].Title)

	byTag, err := svc.GetQuestions(OrderNewest, "[sqlite]")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "indexing in sqlite", byTag[0].Title)

	none, err := svc.GetQuestions(OrderNewest, "[missing] nomatch")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetQuestionByIDRecordsDistinctViews(t *testing.T) {
	svc := newQuestionService(t)

	q := askQuestion(t, svc, "views", []string{"go"}, time.Now().UTC())

	got, err := svc.GetQuestionByID(q.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, got.Views)

	got, err = svc.GetQuestionByID(q.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, got.Views)

	got, err = svc.GetQuestionByID(q.ID, "bob")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, got.Views)

	_, err = svc.GetQuestionByID("missing", "alice")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestVoteQuestion(t *testing.T) {
	svc := newQuestionService(t)

	q := askQuestion(t, svc, "votes", []string{"go"}, time.Now().UTC())

	res, err := svc.VoteQuestion(q.ID, "alice", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, res.UpVotes)
	assert.Empty(t, res.DownVotes)

	// Voting the same way twice cancels.
	res, err = svc.VoteQuestion(q.ID, "alice", true)
	require.NoError(t, err)
	assert.Empty(t, res.UpVotes)

	// Switching sides moves the user between the lists.
	_, err = svc.VoteQuestion(q.ID, "alice", true)
	require.NoError(t, err)
	res, err = svc.VoteQuestion(q.ID, "alice", false)
	require.NoError(t, err)
	assert.Empty(t, res.UpVotes)
	assert.Equal(t, []string{"alice"}, res.DownVotes)

	_, err = svc.VoteQuestion("missing", "alice", true)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAddAnswerNewestFirst(t *testing.T) {
	svc := newQuestionService(t)

	q := askQuestion(t, svc, "answers", []string{"go"}, time.Now().UTC())

	_, err := svc.AddAnswer(q.ID, models.Answer{Text: "older", AnsBy: "lee", AnsDateTime: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = svc.AddAnswer(q.ID, models.Answer{Text: "newer", AnsBy: "kim", AnsDateTime: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	got, err := svc.GetQuestionByID(q.ID, "")
	require.NoError(t, err)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, "newer", got.Answers[0].Text)
	assert.Equal(t, "older", got.Answers[1].Text)

	_, err = svc.AddAnswer("missing", models.Answer{Text: "x", AnsBy: "lee"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAddComment(t *testing.T) {
	svc := newQuestionService(t)

	q := askQuestion(t, svc, "comments", []string{"go"}, time.Now().UTC())
	ans, err := svc.AddAnswer(q.ID, models.Answer{Text: "an answer", AnsBy: "lee"})
	require.NoError(t, err)

	_, err = svc.AddComment("question", q.ID, models.Comment{Text: "on question", CommentBy: "alice"})
	require.NoError(t, err)
	_, err = svc.AddComment("answer", ans.ID, models.Comment{Text: "on answer", CommentBy: "bob"})
	require.NoError(t, err)

	got, err := svc.GetQuestionByID(q.ID, "")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "on question", got.Comments[0].Text)
	require.Len(t, got.Answers, 1)
	require.Len(t, got.Answers[0].Comments, 1)
	assert.Equal(t, "on answer", got.Answers[0].Comments[0].Text)

	_, err = svc.AddComment("answer", "missing", models.Comment{Text: "x", CommentBy: "y"})
	assert.ErrorIs(t, err, ErrAnswerNotFound)
	_, err = svc.AddComment("question", "missing", models.Comment{Text: "x", CommentBy: "y"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
