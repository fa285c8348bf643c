package bot

import (
	"fmt"
	"strings"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
)

// FormatReport renders a status report as a chat message.
func FormatReport(userID string, r *model.StatusReport) string {
	if r == nil || r.Status == model.StatusNotFound {
		return fmt.Sprintf("No verification found for user %v.", userID)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "User: %v\nDecision: %v\nTime: %v", userID, r.Decision, r.Timestamp)
	if len(r.Warnings) == 0 {
		sb.WriteString("\nWarnings: none")
	} else {
		codes := make([]string, 0, len(r.Warnings))
		for _, w := range r.Warnings {
			codes = append(codes, w.Code)
		}
		fmt.Fprintf(&sb, "\nWarnings: %v", strings.Join(codes, ", "))
	}
	if d := r.ExtractedData; d != nil {
		if d.FullName != nil {
			fmt.Fprintf(&sb, "\nName: %v", *d.FullName)
		}
		if d.Country != nil {
			fmt.Fprintf(&sb, "\nCountry: %v", *d.Country)
		}
	}
	return sb.String()
}
