package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"hackreg/internal/models"
)

// Registrations land in columns A:N of the first sheet.
const exportRange = "Sheet1!A:N"

// AppendStudent appends one registration row, retrying transient API failures
// a few times with backoff. Callers treat any returned error as log-only.
func (c *Client) AppendStudent(ctx context.Context, s models.Student) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{studentRow(s)}}
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, exportRange, vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// studentRow maps a record to the spreadsheet column order: timestamp, name,
// email, phone, department, year, rollNumber, accommodation, teamName,
// teamSize, domain, problem statement, event, team-member summary.
func studentRow(s models.Student) []interface{} {
	return []interface{}{
		s.RegisteredAt.Format(time.RFC3339),
		s.Name,
		s.Email,
		s.Phone,
		s.Department,
		s.Year,
		s.RollNumber,
		s.Accommodation,
		s.TeamName,
		s.TeamSize,
		orNA(s.Domain),
		orNA(s.ProblemStatement),
		s.Event,
		memberSummary(s.TeamMembers),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func memberSummary(members []models.TeamMember) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, fmt.Sprintf("%s (%s)", m.Name, m.Email))
	}
	return strings.Join(parts, ", ")
}
