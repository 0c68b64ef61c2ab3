// AngelaMos | 2026
// templates_test.go

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionIncludesNote(t *testing.T) {
	msg, err := DecisionEmail(Decision{To: "ravi@example.com", Name: "Ravi", Note: "incomplete docs"})
	require.NoError(t, err)

	assert.Equal(t, SubjectRejected, msg.Subject)
	assert.Equal(t, "ravi@example.com", msg.To)
	assert.Contains(t, msg.HTML, "Hi Ravi")
	assert.Contains(t, msg.HTML, "incomplete docs")
	assert.Contains(t, msg.HTML, "Reviewer note")
}

func TestRejectionWithoutNoteOmitsBlock(t *testing.T) {
	msg, err := DecisionEmail(Decision{To: "ravi@example.com", Name: "Ravi", Note: "   "})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "Reviewer note")
}

func TestApprovalIgnoresNote(t *testing.T) {
	msg, err := DecisionEmail(Decision{
		Approved: true,
		To:       "ravi@example.com",
		Name:     "Ravi",
		Note:     "internal remark",
	})
	require.NoError(t, err)

	assert.Equal(t, SubjectApproved, msg.Subject)
	assert.NotContains(t, msg.HTML, "internal remark")
}

func TestApprovalPromisesCredentialsOnlyWhenSent(t *testing.T) {
	sent, err := DecisionEmail(Decision{Approved: true, To: "ravi@example.com", Name: "Ravi", CredentialsSent: true})
	require.NoError(t, err)
	assert.Contains(t, sent.HTML, "separate email with your agent account login details")

	notSent, err := DecisionEmail(Decision{Approved: true, To: "ravi@example.com", Name: "Ravi"})
	require.NoError(t, err)
	assert.NotContains(t, notSent.HTML, "separate email")
	assert.Contains(t, notSent.HTML, "Our team will contact you")
}

func TestReplyEscapesUserContent(t *testing.T) {
	msg, err := ReplyEmail(ReplyContact, "a@b.com", "<b>Asha</b>", `<script>alert("x")</script>`)
	require.NoError(t, err)

	assert.Equal(t, SubjectContactReply, msg.Subject)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<b>Asha</b>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestQuoteReplySubject(t *testing.T) {
	msg, err := ReplyEmail(ReplyQuote, "jane@x.com", "Jane", "Your premium is 12k")
	require.NoError(t, err)

	assert.Equal(t, SubjectQuoteReply, msg.Subject)
	assert.Contains(t, msg.HTML, "quote request")
	assert.Contains(t, msg.HTML, "Your premium is 12k")
}

func TestCredentialsEmail(t *testing.T) {
	msg, err := CredentialsEmail(Credentials{
		Email:    "ravi@example.com",
		Name:     "Ravi",
		Password: "Tmp#Pass9",
		Role:     "agent",
		LoginURL: "https://auraf.in/auth",
	})
	require.NoError(t, err)

	assert.Equal(t, SubjectAgentAccount, msg.Subject)
	assert.Contains(t, msg.HTML, "Tmp#Pass9")
	assert.Contains(t, msg.HTML, "Agent")
	assert.Contains(t, msg.HTML, `href="https://auraf.in/auth"`)

	msg, err = CredentialsEmail(Credentials{Email: "c@x.com", Name: "C", Password: "p", Role: "client"})
	require.NoError(t, err)
	assert.Equal(t, SubjectAccountReady, msg.Subject)
	assert.NotContains(t, msg.HTML, "href=")
}
