package mailer_test

import (
	"testing"

	"github.com/Flaque/filet"
	"github.com/crimealert/beacon/internal/mailer"
	"github.com/crimealert/beacon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_Compose(t *testing.T) {
	t.Parallel()

	report := models.ReportSubmitted{
		ReportID:    1,
		ReporterID:  42,
		Latitude:    23.8103,
		Longitude:   90.4125,
		Title:       "Stolen bicycle",
		Description: "Blue frame\nBlack saddle",
		CrimeType:   "theft",
	}
	alice := models.RecipientCandidate{Email: "a@example.com", Username: "alice"}

	t.Run("success - renders recipient and incident details", func(t *testing.T) {
		t.Parallel()
		composer := mailer.NewComposer()

		msg, err := composer.Compose(report, alice, "")

		require.NoError(t, err)
		assert.Equal(t, "a@example.com", msg.ToEmail)
		assert.Equal(t, "alice", msg.ToName)
		assert.Equal(t, mailer.Subject, msg.Subject)
		assert.Contains(t, msg.HTMLBody, "Hello alice,")
		assert.Contains(t, msg.HTMLBody, "Stolen bicycle")
		assert.Contains(t, msg.HTMLBody, "theft")
		assert.Contains(t, msg.HTMLBody, "Blue frame<br>Black saddle")
		assert.NotContains(t, msg.HTMLBody, "Approximate location")
		assert.Contains(t, msg.TextBody, "Hello alice,")
		assert.Contains(t, msg.TextBody, "Stolen bicycle")
	})

	t.Run("success - empty username falls back to a generic greeting", func(t *testing.T) {
		t.Parallel()
		composer := mailer.NewComposer()
		anonymous := models.RecipientCandidate{Email: "x@example.com"}

		msg, err := composer.Compose(report, anonymous, "")

		require.NoError(t, err)
		assert.Contains(t, msg.HTMLBody, "Hello there,")
		assert.Contains(t, msg.TextBody, "Hello there,")
	})

	t.Run("success - html in user content is escaped", func(t *testing.T) {
		t.Parallel()
		composer := mailer.NewComposer()
		hostile := report
		hostile.Title = `<script>alert("x")</script>`

		msg, err := composer.Compose(hostile, alice, "")

		require.NoError(t, err)
		assert.NotContains(t, msg.HTMLBody, "<script>")
		assert.Contains(t, msg.HTMLBody, "&lt;script&gt;")
	})

	t.Run("success - location hint is included when present", func(t *testing.T) {
		t.Parallel()
		composer := mailer.NewComposer()

		msg, err := composer.Compose(report, alice, "Gulshan Avenue, Dhaka")

		require.NoError(t, err)
		assert.Contains(t, msg.HTMLBody, "Approximate location")
		assert.Contains(t, msg.HTMLBody, "Gulshan Avenue, Dhaka")
		assert.Contains(t, msg.TextBody, "Gulshan Avenue, Dhaka")
	})
}

func TestNewComposerFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("success - custom template overrides the body", func(t *testing.T) {
		file := filet.TmpFile(t, "", "Alert for {{.Greeting}}: {{.Title}}")

		composer, err := mailer.NewComposerFromFile(file.Name())
		require.NoError(t, err)

		msg, err := composer.Compose(
			models.ReportSubmitted{Title: "Stolen bicycle"},
			models.RecipientCandidate{Email: "a@example.com", Username: "alice"},
			"",
		)

		require.NoError(t, err)
		assert.Equal(t, "Alert for alice: Stolen bicycle", msg.HTMLBody)
	})

	t.Run("error - missing template file", func(t *testing.T) {
		composer, err := mailer.NewComposerFromFile("does/not/exist.tmpl")

		require.Nil(t, composer)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to read mail template")
	})

	t.Run("error - malformed template", func(t *testing.T) {
		file := filet.TmpFile(t, "", "{{.Unclosed")

		composer, err := mailer.NewComposerFromFile(file.Name())

		require.Nil(t, composer)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to parse mail template")
	})
}
