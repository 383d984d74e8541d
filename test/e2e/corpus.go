// Package e2e runs the full query pipeline against fake model services over HTTP.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/models"
)

// CorpusDimensions is the vector size of every corpus embedding.
const CorpusDimensions = 64

// CorpusDocument is one stored document and the question that should retrieve it.
type CorpusDocument struct {
	ID       string
	Question string
	Content  string
}

// QueryTestCase is a question and the document ID it must resolve to.
type QueryTestCase struct {
	Query         string
	ExpectedDocID string
	Description   string
}

// Corpus holds documents and query test cases for E2E tests.
type Corpus struct {
	Documents    []CorpusDocument
	TestCases    []QueryTestCase
	TotalDocs    int
	TotalQueries int
}

// BuildCorpus returns a small handbook corpus. Each document is stored under the
// embedding of its question, so asking that question retrieves it with cosine 1.
func BuildCorpus() *Corpus {
	docs := []CorpusDocument{
		{"handbook/vacation.md", "how many vacation days do I get", "Full-time staff accrue twenty-five vacation days per year, prorated by start date."},
		{"handbook/remote.md", "can I work from another country", "Remote work abroad is allowed for up to sixty days a year with manager approval."},
		{"handbook/expenses.md", "how do I submit an expense report", "Expense reports are filed in the finance portal within thirty days with receipts attached."},
		{"handbook/equipment.md", "what laptop will I receive", "New hires choose between a 14-inch and a 16-inch laptop; peripherals are ordered separately."},
		{"handbook/parental.md", "what is the parental leave policy", "Parents receive sixteen weeks of paid leave, which can be split into two blocks."},
		{"handbook/security.md", "how do I report a phishing email", "Forward suspected phishing to the security inbox and do not click any links."},
		{"handbook/oncall.md", "how is on-call compensated", "On-call weeks are paid a flat stipend plus time off in lieu for night pages."},
		{"handbook/learning.md", "is there a training budget", "Each employee has an annual learning budget for courses, books and conferences."},
		{"handbook/travel.md", "which class can I fly", "Economy class is standard; premium economy is allowed on flights over eight hours."},
		{"handbook/sick.md", "what if I am sick", "Notify your manager before your shift; a doctor's note is needed after three days."},
		{"handbook/referral.md", "is there a referral bonus", "Successful referrals earn a bonus paid after the new hire's probation period."},
		{"handbook/payroll.md", "when is payday", "Salaries are paid on the last business day of each month."},
		{"contracts/renewal.txt", "when does the contract renew", "The service agreement renews automatically every January unless cancelled in writing."},
		{"contracts/termination.txt", "how much notice to terminate", "Either party may terminate with ninety days of written notice."},
		{"contracts/liability.txt", "what is the liability cap", "Liability is capped at the fees paid in the twelve months before the claim."},
		{"contracts/sla.txt", "what uptime is guaranteed", "The provider guarantees 99.9 percent monthly uptime, with service credits below that."},
		{"manuals/printer.txt", "the printer shows error 42", "Error 42 means a paper jam in tray two; open the rear panel and remove the sheet."},
		{"manuals/vpn.txt", "how do I connect to the vpn", "Install the VPN client, sign in with single sign-on and choose the nearest gateway."},
		{"manuals/badge.txt", "I lost my access badge", "Report lost badges at reception; a temporary badge is valid for one week."},
		{"manuals/wifi.txt", "what is the guest wifi password", "The guest network password rotates weekly and is shown on the lobby screen."},
	}
	cases := make([]QueryTestCase, 0, len(docs))
	for _, d := range docs {
		cases = append(cases, QueryTestCase{
			Query:         d.Question,
			ExpectedDocID: d.ID,
			Description:   "ask " + d.ID,
		})
	}
	return &Corpus{
		Documents:    docs,
		TestCases:    cases,
		TotalDocs:    len(docs),
		TotalQueries: len(cases),
	}
}

// ToRecordRows embeds every question with embedder and returns the database rows.
func (c *Corpus) ToRecordRows(ctx context.Context, embedder embedding.Embedder) ([]*models.RecordRow, error) {
	rows := make([]*models.RecordRow, 0, len(c.Documents))
	for _, d := range c.Documents {
		vec, err := embedder.Embed(ctx, d.Question)
		if err != nil {
			return nil, fmt.Errorf("embed %s: %w", d.ID, err)
		}
		raw, err := json.Marshal(vec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &models.RecordRow{ID: d.ID, VectorJSON: string(raw), Content: d.Content})
	}
	return rows, nil
}
