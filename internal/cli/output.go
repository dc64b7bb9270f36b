package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case LoginResult:
		o.printLoginResult(v)
	case Post:
		o.printPost(v)
	case PostDetail:
		o.printPostDetail(v)
	case []Post:
		o.printPostList(v)
	case Comment:
		o.printComment(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// LoginResult response type
type LoginResult struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// Post response type
type Post struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Comment response type
type Comment struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostDetail response type
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.DisplayName, a.ID)
	fmt.Printf("Username: %s\n", a.Username)
}

func (o *Output) printLoginResult(l LoginResult) {
	fmt.Printf("Logged in as: %s\n", l.DisplayName)
	fmt.Printf("Token: %s\n", l.Token)
}

func (o *Output) printPost(p Post) {
	fmt.Printf("%s\n", p.Title)
	fmt.Printf("  by %s at %s (%s)\n", p.AuthorName, p.CreatedAt.Format(time.RFC3339), p.ID)
	fmt.Println()
	fmt.Println(p.Content)
}

func (o *Output) printPostList(posts []Post) {
	if len(posts) == 0 {
		fmt.Println("No posts")
		return
	}
	for _, p := range posts {
		fmt.Printf("%s  %s  by %s  (%s)\n", p.CreatedAt.Format("2006-01-02 15:04"), p.Title, p.AuthorName, p.ID)
	}
}

func (o *Output) printPostDetail(d PostDetail) {
	o.printPost(d.Post)
	fmt.Printf("\nComments (%d):\n", len(d.Comments))
	for _, c := range d.Comments {
		fmt.Printf("  %s [%s]: %s\n", c.AuthorName, c.CreatedAt.Format("2006-01-02 15:04"), c.Text)
	}
}

func (o *Output) printComment(c Comment) {
	fmt.Printf("Comment added by %s: %s\n", c.AuthorName, c.Text)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
