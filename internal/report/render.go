package report

import (
	"fmt"
	"strings"

	"github.com/token-topup/topup-server/internal/models"
)

// Render serializes groups into the fixed-format text report. The
// layout is a contract with downstream consumers: tab-indented, one
// line per item, each company section ending with exactly one blank
// line. Zero groups render as empty text.
func Render(groups []models.CompanyGroup) string {
	var b strings.Builder

	for _, g := range groups {
		fmt.Fprintf(&b, "\tCompany Id: %d\n", g.CompanyID)
		fmt.Fprintf(&b, "\tCompany Name: %s\n", g.CompanyName)
		b.WriteString("\tUsers Emailed:\n")

		for _, u := range g.Users {
			fmt.Fprintf(&b, "\t\t%s, %s, %s\n", u.LastName, u.FirstName, u.Email)
			fmt.Fprintf(&b, "\t\t  Previous Token Balance, %d\n", u.Tokens)
			fmt.Fprintf(&b, "\t\t  New Token Balance %d\n", u.NewTokenBalance)
			if u.ShouldSendEmail {
				b.WriteString("\t\t  Email sent\n")
			} else {
				b.WriteString("\t\t  Email not sent\n")
			}
		}

		fmt.Fprintf(&b, "\t\tTotal amount of top ups for %s: %d\n\n", g.CompanyName, g.TotalTopUps)
	}

	return b.String()
}
