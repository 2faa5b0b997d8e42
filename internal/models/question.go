package models

import "time"

// Question represents a community question with its embedded tags,
// answers and comments, aggregated the way clients consume it.
type Question struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Tags        []Tag     `json:"tags"`
	Answers     []Answer  `json:"answers"`
	AskedBy     string    `json:"askedBy"`
	AskDateTime time.Time `json:"askDateTime"`
	Views       []string  `json:"views"`
	UpVotes     []string  `json:"upVotes"`
	DownVotes   []string  `json:"downVotes"`
	Comments    []Comment `json:"comments"`
}

// Answer represents an answer posted on a question.
type Answer struct {
	ID          string    `json:"_id"`
	Text        string    `json:"text"`
	AnsBy       string    `json:"ansBy"`
	AnsDateTime time.Time `json:"ansDateTime"`
	Comments    []Comment `json:"comments"`
}

// Comment represents a comment on a question or an answer.
type Comment struct {
	ID              string    `json:"_id"`
	Text            string    `json:"text"`
	CommentBy       string    `json:"commentBy"`
	CommentDateTime time.Time `json:"commentDateTime"`
}

// VoteResult summarizes a question's vote lists after a vote is cast.
type VoteResult struct {
	Msg       string   `json:"msg"`
	UpVotes   []string `json:"upVotes"`
	DownVotes []string `json:"downVotes"`
}
