package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

// Reporter prints period analytics to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(analytics *domain.PeriodAnalytics) error {
	tmpl := `
Borrowing Analytics
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}

Total Records: {{.Summary.TotalRecords}}
Unique Borrowers: {{.Summary.UniqueBorrowers}}
Unique Books: {{.Summary.UniqueBooks}}
Average Borrowing Duration: {{.Summary.AverageBorrowingDuration}} days
Most Borrowed Book: {{.Summary.MostBorrowedBook}}
Most Active Borrower: {{.Summary.MostActiveBorrower}}

=== Top Books ===
{{range .TopBooks}}
- {{.Entity}}: {{.Count}}
{{end}}
=== Top Borrowers ===
{{range .TopBorrowers}}
- {{.Entity}}: {{.Count}}
{{end}}
`
	t, err := template.New("analytics").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, analytics)
}
